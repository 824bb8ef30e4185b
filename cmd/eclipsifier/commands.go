package main

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abworrall/eclipsifier/pkg/eclipse"
)

// loadAll loads every picture under the base dir, with the configured overlay colors.
func (a *app) loadAll() ([]*eclipse.Picture, error) {
	p := newProgress()
	pics, err := eclipse.LoadPictures(a.cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	pal, err := a.cfg.Palette()
	if err != nil {
		return nil, err
	}
	for _, pic := range pics {
		pic.SetPalette(pal)
	}

	p.done(fmt.Sprintf("Loaded %d images from %s", len(pics), a.cfg.BaseDir))
	return pics, nil
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the photos, their capture times and saved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			pics, err := a.loadAll()
			if err != nil {
				return err
			}

			for _, pic := range pics {
				state := "-"
				if pic.Loaded && pic.Included() {
					state = "saved"
				} else if pic.Loaded {
					state = "saved, excluded"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-30s %-16s %-36s %s\n",
					pic.CaptureTime.Format("15:04:05"), pic.Filename(), state, pic.Exposure, pic.Params())
			}
			return nil
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		out        string
		best       bool
		size       int
		save       bool
		cx, cy     float64
		rotate     int
		zoom       int
		width      int
		height     int
		brightness int
		contrast   int
		include    bool
		drag       []int
		autoCenter bool
	)

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Render one photo with its settings, optionally changing and saving them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pic, err := eclipse.LoadPicture(args[0])
			if err != nil {
				return err
			}
			if err := pic.LoadSidecar(); err != nil {
				return err
			}
			pal, err := a.cfg.Palette()
			if err != nil {
				return err
			}
			pic.SetPalette(pal)

			if autoCenter {
				if err := pic.AutoCenter(); err != nil {
					return err
				}
			}

			// Override the saved settings with command line args, if given.
			// Only the args are pulled into range; saved values are kept as is.
			in := eclipse.Params{Rotate: rotate, Zoom: zoom, Brightness: brightness, Contrast: contrast}.ClampToRanges()
			np := pic.Params()
			flags := cmd.Flags()
			if flags.Changed("cx") {
				np.CX = cx
			}
			if flags.Changed("cy") {
				np.CY = cy
			}
			if flags.Changed("rotate") {
				np.Rotate = in.Rotate
			}
			if flags.Changed("zoom") {
				np.Zoom = in.Zoom
			}
			if flags.Changed("width") {
				np.Width = width
			}
			if flags.Changed("height") {
				np.Height = height
			}
			if flags.Changed("brightness") {
				np.Brightness = in.Brightness
			}
			if flags.Changed("contrast") {
				np.Contrast = in.Contrast
			}
			if flags.Changed("include") {
				np.Included = include
			}
			pic.SetParams(np)

			if flags.Changed("drag") {
				if len(drag) != 2 {
					return fmt.Errorf("--drag wants dx,dy; got %v", drag)
				}
				pic.MoveBy(drag[0], drag[1])
			}

			var img *image.RGBA
			if best {
				img, err = pic.ConfiguredBest(size)
			} else {
				img, err = pic.Configured()
			}
			if err != nil {
				return err
			}

			if err := eclipse.SaveImage(img, out); err != nil {
				return err
			}
			log.Infof("%s -> %s", pic, out)

			if save {
				if err := pic.SaveSidecar(); err != nil {
					return err
				}
				log.Infof("Saved settings to %s", eclipse.SidecarFilename(pic.LoadFilename))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "preview.png", "output image file")
	cmd.Flags().BoolVar(&best, "best", false, "render best quality (no alignment aids)")
	cmd.Flags().IntVar(&size, "size", eclipse.DefaultBestSize, "output size for --best")
	cmd.Flags().BoolVar(&save, "save", false, "save the settings next to the photo")
	cmd.Flags().Float64Var(&cx, "cx", 0, "center X, in photo pixels")
	cmd.Flags().Float64Var(&cy, "cy", 0, "center Y, in photo pixels")
	cmd.Flags().IntVar(&rotate, "rotate", 0, "rotation in degrees, counter-clockwise [-180,180]")
	cmd.Flags().IntVar(&zoom, "zoom", 100, "zoom percent [10,1000]")
	cmd.Flags().IntVar(&width, "width", eclipse.DefaultOutputSize, "preview width")
	cmd.Flags().IntVar(&height, "height", eclipse.DefaultOutputSize, "preview height")
	cmd.Flags().IntVar(&brightness, "brightness", 100, "brightness percent [10,190]")
	cmd.Flags().IntVar(&contrast, "contrast", 100, "contrast percent [10,190]")
	cmd.Flags().BoolVar(&include, "include", true, "include in the collage")
	cmd.Flags().IntSliceVar(&drag, "drag", nil, "drag the picture by dx,dy preview pixels")
	cmd.Flags().BoolVar(&autoCenter, "autocenter", false, "center on the moon (totality shots only)")

	return cmd
}

func newCollageCmd(a *app) *cobra.Command {
	var (
		width, height int
		tile          int
		central       int
		workers       int
		out           string
		previewOut    string
		previewSize   int
	)

	cmd := &cobra.Command{
		Use:   "collage",
		Short: "Tile every included photo into one collage image",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Override the config file with command line args, if relevant
			flags := cmd.Flags()
			cc := &a.cfg.Collage
			if flags.Changed("width") {
				cc.Width = width
			}
			if flags.Changed("height") {
				cc.Height = height
			}
			if flags.Changed("tile") {
				cc.TileSize = tile
			}
			if flags.Changed("central") {
				cc.CentralIndex = central
			}
			if flags.Changed("workers") {
				cc.Workers = workers
			}
			if flags.Changed("output") {
				cc.Output = out
			}
			if err := a.cfg.Finalize(); err != nil {
				return err
			}

			pics, err := a.loadAll()
			if err != nil {
				return err
			}

			p := newProgress()
			col := a.cfg.NewCollage(pics)
			img, err := col.Render()
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Rendered %s with %d tiles", col.String(), len(col.Placements)))

			if err := eclipse.SaveImage(img, cc.Output); err != nil {
				return err
			}
			log.Infof("Collage written '%s'", cc.Output)

			if previewOut != "" {
				if err := eclipse.SaveImage(eclipse.FitPreview(img, previewSize), previewOut); err != nil {
					return err
				}
				log.Infof("Collage preview written '%s'", previewOut)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", eclipse.DefaultCollageWidth, "collage width")
	cmd.Flags().IntVar(&height, "height", eclipse.DefaultCollageHeight, "collage height")
	cmd.Flags().IntVar(&tile, "tile", eclipse.DefaultBestSize, "size of each photo in the collage")
	cmd.Flags().IntVar(&central, "central", 0, "which included photo is drawn across the full width")
	cmd.Flags().IntVar(&workers, "workers", 1, "render this many photos in parallel")
	cmd.Flags().StringVarP(&out, "output", "o", "collage.png", "output image file")
	cmd.Flags().StringVar(&previewOut, "preview", "", "also write a downsized copy here")
	cmd.Flags().IntVar(&previewSize, "preview-size", eclipse.DefaultPreviewSize, "long side of the downsized copy")

	return cmd
}

func newTimelineCmd(a *app) *cobra.Command {
	var (
		out  string
		size int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Draw thumbnails of the included photos, spaced by capture time",
		RunE: func(cmd *cobra.Command, args []string) error {
			pics, err := a.loadAll()
			if err != nil {
				return err
			}

			entries, err := eclipse.BuildTimeline(pics, size)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %5d  luma %5.1f (p99 %3d)  %s\n",
					e.Label, e.Offset, e.MeanLuma, e.PeakLuma, e.Picture.Filename())
			}

			if err := eclipse.SaveImage(eclipse.RenderTimeline(entries), out); err != nil {
				return err
			}
			log.Infof("Timeline written '%s'", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "timeline.png", "output image file")
	cmd.Flags().IntVar(&size, "size", eclipse.DefaultThumbnailSize, "thumbnail size")

	return cmd
}
