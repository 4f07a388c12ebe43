package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"snapbox/internal/adapters/media/synthetic"
	"snapbox/internal/adapters/photoapi"
	"snapbox/internal/config"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"snapbox/internal/core/service/buffer"
	"snapbox/internal/core/service/camera"
	"snapbox/internal/core/service/gallery"
	"snapbox/internal/core/service/photosync"
	"text/tabwriter"
)

const usage = `usage: snapctl <command> [args]

commands:
  list                               refresh and print the photos
  info                               print storage usage
  upload <file>                      upload an image file from disk
  capture [-facing front|rear] [-switch]
                                     take a photo with the camera and upload it
  delete <id>                        delete one photo
  clear                              delete every photo
`

// errOperationFailed is returned when the controller recorded a failure in its error slot
var errOperationFailed = errors.New("operation failed")

type app struct {
	cfg        config.ClientConfig
	out        io.Writer
	logger     *slog.Logger
	controller port.SyncController
	devices    port.MediaDevices
}

func newApp(cfg config.ClientConfig, store port.PhotoStore, devices port.MediaDevices, out io.Writer, logger *slog.Logger) *app {
	return &app{
		cfg:        cfg,
		out:        out,
		logger:     logger,
		controller: photosync.NewSyncController(store, buffer.NewPhotoBuffer(), logger),
		devices:    devices,
	}
}

func run(ctx context.Context, args []string, out io.Writer, logger *slog.Logger) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a := newApp(*cfg, photoapi.NewClient(*cfg, logger), synthetic.NewDevice(), out, logger)
	return a.dispatch(ctx, args)
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errors.New("missing command")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "list":
		a.controller.Load(ctx)
		return a.report(true)
	case "info":
		a.controller.Refresh(ctx)
		return a.report(false)
	case "upload":
		return a.upload(ctx, rest)
	case "capture":
		return a.capture(ctx, rest)
	case "delete":
		if len(rest) != 1 {
			return errors.New("delete needs exactly one photo id")
		}
		a.controller.Load(ctx)
		a.controller.Delete(ctx, rest[0])
		return a.report(true)
	case "clear":
		a.controller.ClearAll(ctx)
		return a.report(true)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("upload needs exactly one file")
	}
	draft, err := gallery.NewGalleryPicker(a.cfg.GalleryMaxSize, a.logger).Pick(args[0])
	if err != nil {
		return err
	}

	saved, ok := a.controller.Save(ctx, draft)
	if ok {
		fmt.Fprintf(a.out, "uploaded %s (%s)\n\n", saved.ID, domain.FormatSize(saved.Size))
	}
	return a.report(true)
}

func (a *app) capture(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(a.out)
	facing := fs.String("facing", a.cfg.Facing, "camera to open, front or rear")
	switchFacing := fs.Bool("switch", false, "switch to the other camera before taking the photo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, ok := domain.ParseFacingMode(*facing)
	if !ok {
		return fmt.Errorf("invalid facing mode %q", *facing)
	}

	cam := camera.NewCameraService(a.devices, synthetic.NewHeadlessSink(), a.cfg, a.logger)
	defer cam.Stop()

	constraints := domain.CameraConstraints{FacingMode: mode, Width: a.cfg.Width, Height: a.cfg.Height}
	cam.Start(ctx, &constraints)
	if *switchFacing {
		cam.SwitchFacing(ctx)
	}

	session := cam.Session()
	if !session.IsStreaming {
		return fmt.Errorf("camera %s: %s", session.ErrorKind, session.LastError)
	}

	still, err := cam.CapturePhoto()
	if err != nil {
		return err
	}
	if still == nil {
		return errors.New("camera stopped before the photo was taken")
	}
	cam.Stop()

	saved, ok := a.controller.Save(ctx, domain.PhotoDraft{
		Content:  still.Data,
		MimeType: still.MimeType,
		Source:   domain.SourceCamera,
	})
	if ok {
		fmt.Fprintf(a.out, "captured %dx%d with the %s camera, uploaded %s (%s)\n\n",
			still.Width, still.Height, session.FacingMode, saved.ID, domain.FormatSize(saved.Size))
	}
	return a.report(true)
}

// report prints the buffer and storage usage, then the error slot
func (a *app) report(withPhotos bool) error {
	if withPhotos {
		photos := a.controller.Photos()
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSOURCE\tSIZE\tCAPTURED")
		for _, p := range photos {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.Name, p.Source.Label(), domain.FormatSize(p.Size), p.CapturedAt.Local().Format("2006-01-02 15:04"))
		}
		tw.Flush()
		fmt.Fprintf(a.out, "\n%d photos, %s in buffer\n", len(photos), domain.FormatSize(a.controller.SizeSummary()))
	}

	info := a.controller.StorageInfo()
	fmt.Fprintf(a.out, "storage: %s used, %s available\n", domain.FormatSize(info.Used), domain.FormatSize(info.Available))

	if err := a.controller.LastError(); err != nil {
		fmt.Fprintf(a.out, "error [%s]: %v\n", a.controller.LastErrorKind(), err)
		return errOperationFailed
	}
	return nil
}
