// Command letterart renders videos, still images, and animated GIFs
// as colorized letter art, either live in the terminal or baked into
// an output file.
package main

import (
	"context"
	"errors"
	"fmt"
	"image/gif"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/letterart/letterart"
	"github.com/letterart/letterart/video"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(logger)

	app := cli.NewApp()
	app.Name = "letterart"
	app.Usage = "render videos and images as colorized letter art"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		streamCommand(logger),
		bakeCommand(logger),
		imageCommand(logger),
		gifCommand(logger),
	}
	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func streamCommand(logger *slog.Logger) cli.Command {
	return cli.Command{
		Name:      "stream",
		Usage:     "play a video in the terminal as live letter art",
		ArgsUsage: "VIDEO",
		Flags: append(mappingFlags(0.1, "10,10,10"),
			cli.Float64Flag{
				Name:  "fps",
				Value: 15,
				Usage: "display frame rate; 0 plays at the source rate",
			},
			cli.BoolFlag{
				Name:  "fit",
				Usage: "scale the grid to the terminal size",
			},
			cli.BoolFlag{
				Name:  "no-hide-cursor",
				Usage: "leave the terminal cursor visible while streaming",
			},
			cli.BoolFlag{
				Name:  "force",
				Usage: "stream even when stdout is not a terminal",
			},
		),
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("stream needs a video file argument")
			}
			alphabet, mode, threshold, err := parseMapping(c)
			if err != nil {
				return err
			}

			out, tty := stdoutWriter()
			if !tty && !c.Bool("force") {
				return errors.New("stdout is not a terminal; use --force to stream anyway")
			}

			cfg := video.StreamConfig{
				Alphabet:   alphabet,
				Downscale:  c.Float64("downscale"),
				FPS:        c.Float64("fps"),
				Threshold:  threshold,
				Mode:       mode,
				HideCursor: tty && !c.Bool("no-hide-cursor"),
				Output:     out,
				Logger:     logger,
			}
			if c.Bool("fit") {
				cols, rows := termSize()
				cfg.Downscale = 0
				cfg.MaxCols, cfg.MaxRows = cols, rows-1
			}

			ctx, cancel := interruptContext()
			defer cancel()
			logger.Info("press ctrl+c to stop")
			return video.Stream(ctx, path, cfg)
		},
	}
}

func bakeCommand(logger *slog.Logger) cli.Command {
	return cli.Command{
		Name:      "bake",
		Usage:     "render a video into a letter-art video file",
		ArgsUsage: "VIDEO",
		Flags: append(mappingFlags(0.2, "30,30,30"),
			cli.StringFlag{
				Name:  "output,o",
				Usage: "output video `FILE` (required)",
			},
			cli.IntFlag{
				Name:  "cell",
				Value: letterart.DefaultCellPitch,
				Usage: "pixel size of one letter cell",
			},
			cli.Float64Flag{
				Name:  "font-scale",
				Value: letterart.DefaultFontScale,
				Usage: "letter size relative to the cell pitch",
			},
			cli.IntFlag{
				Name:  "thickness",
				Value: 1,
				Usage: "stroke thickness in pixels",
			},
			cli.StringFlag{
				Name:  "font",
				Usage: "TrueType font `FILE` to render letters with",
			},
			cli.Float64Flag{
				Name:  "fps",
				Usage: "output frame rate; 0 keeps the source rate",
			},
			cli.BoolFlag{
				Name:  "carry",
				Usage: "carry the letter cycle across frames instead of restarting it",
			},
		),
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("bake needs a video file argument")
			}
			outPath := c.String("output")
			if outPath == "" {
				return errors.New("bake needs --output")
			}
			alphabet, mode, threshold, err := parseMapping(c)
			if err != nil {
				return err
			}

			ctx, cancel := interruptContext()
			defer cancel()
			return video.Bake(ctx, path, outPath, video.BakeConfig{
				Alphabet:  alphabet,
				Downscale: c.Float64("downscale"),
				Threshold: threshold,
				Mode:      mode,
				Carryover: c.Bool("carry"),
				CellPitch: c.Int("cell"),
				FontScale: c.Float64("font-scale"),
				Thickness: c.Int("thickness"),
				FontFile:  c.String("font"),
				FPS:       c.Float64("fps"),
				Logger:    logger,
			})
		},
	}
}

func imageCommand(logger *slog.Logger) cli.Command {
	return cli.Command{
		Name:      "image",
		Usage:     "render a still image as letter art",
		ArgsUsage: "IMAGE",
		Flags: append(append(mappingFlags(0.1, ""), adjustFlags()...),
			cli.StringFlag{
				Name:  "output,o",
				Usage: "write the art to an image `FILE` instead of the terminal",
			},
			cli.BoolFlag{
				Name:  "fit",
				Usage: "scale the grid to the terminal size",
			},
		),
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("image needs an image file argument")
			}
			alphabet, mode, threshold, err := parseMapping(c)
			if err != nil {
				return err
			}

			img, err := letterart.OpenImage(path)
			if err != nil {
				return err
			}
			img = parseAdjust(c).Apply(img)

			downscale := c.Float64("downscale")
			if c.Bool("fit") {
				downscale = fitDownscale(img.Bounds().Dx(), img.Bounds().Dy())
			}
			grid, err := letterart.DownscaleImage(img, downscale)
			if err != nil {
				return err
			}

			var opts []letterart.MapperOption
			if threshold != nil {
				opts = append(opts, letterart.WithThreshold(*threshold))
			}
			glyphs := letterart.NewMapper(alphabet, mode, opts...).MapFrame(grid)

			if outPath := c.String("output"); outPath != "" {
				canvas, err := letterart.NewCanvasRenderer(alphabet)
				if err != nil {
					return err
				}
				if err := letterart.SaveImage(canvas.Render(glyphs), outPath); err != nil {
					return err
				}
				logger.Info("wrote image", "path", outPath)
				return nil
			}

			out, _ := stdoutWriter()
			renderer := letterart.NewTermRenderer(out, letterart.WithCursorHome(false))
			return renderer.RenderFrame(glyphs)
		},
	}
}

func gifCommand(logger *slog.Logger) cli.Command {
	return cli.Command{
		Name:      "gif",
		Usage:     "play an animated GIF in the terminal as letter art",
		ArgsUsage: "GIF",
		Flags: append(append(mappingFlags(0.1, ""), adjustFlags()...),
			cli.BoolFlag{
				Name:  "no-hide-cursor",
				Usage: "leave the terminal cursor visible during playback",
			},
			cli.BoolFlag{
				Name:  "force",
				Usage: "play even when stdout is not a terminal",
			},
		),
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("gif needs a gif file argument")
			}
			alphabet, mode, threshold, err := parseMapping(c)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open gif %s: %w", path, err)
			}
			defer f.Close()
			g, err := gif.DecodeAll(f)
			if err != nil {
				return fmt.Errorf("decode gif %s: %w", path, err)
			}

			out, tty := stdoutWriter()
			if !tty && !c.Bool("force") {
				return errors.New("stdout is not a terminal; use --force to play anyway")
			}

			opts := []letterart.MapperOption{letterart.WithCarryover(true)}
			if threshold != nil {
				opts = append(opts, letterart.WithThreshold(*threshold))
			}
			mapper := letterart.NewMapper(alphabet, mode, opts...)

			ctx, cancel := interruptContext()
			defer cancel()
			logger.Info("press ctrl+c to stop")
			return letterart.PlayGIF(ctx, out, g, letterart.GIFConfig{
				Downscale:  c.Float64("downscale"),
				Mapper:     mapper,
				Adjust:     parseAdjust(c),
				HideCursor: tty && !c.Bool("no-hide-cursor"),
			})
		},
	}
}

// mappingFlags is the flag set shared by every command: what letters
// to cycle, how far to downscale, and what counts as background.
func mappingFlags(downscale float64, threshold string) []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "letters,l",
			Value: letterart.DefaultLetters,
			Usage: "letters to cycle through, one per cell",
		},
		cli.Float64Flag{
			Name:  "downscale,d",
			Value: downscale,
			Usage: "cell grid scaling factor relative to the source size",
		},
		cli.StringFlag{
			Name:  "threshold,t",
			Value: threshold,
			Usage: "background bound as `R,G,B`; cells at or below it on every channel stay blank. Empty renders every cell",
		},
		cli.StringFlag{
			Name:  "cycle",
			Value: "global",
			Usage: "letter cycling order: global or row",
		},
	}
}

// adjustFlags are the tone adjustments for still images and GIFs.
func adjustFlags() []cli.Flag {
	return []cli.Flag{
		cli.Float64Flag{
			Name:  "gamma,g",
			Value: 1.0,
			Usage: "`GAMMA` = 1.0 gives the original image. Less than 1.0 darkens it, greater lightens it",
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. -100 is solid black, 100 solid white",
		},
		cli.Float64Flag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` = 0 gives the original image. -100 is solid grey, 100 maximum contrast",
		},
		cli.Float64Flag{
			Name:  "sharpen,s",
			Usage: "`SHARPEN` = 0 gives the original image. Greater than 0 sharpens it",
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "invert the image",
		},
	}
}

func parseMapping(c *cli.Context) (letterart.Alphabet, letterart.CycleMode, *letterart.Threshold, error) {
	alphabet, err := letterart.NewAlphabet(c.String("letters"))
	if err != nil {
		return letterart.Alphabet{}, 0, nil, err
	}
	mode, err := letterart.ParseCycleMode(c.String("cycle"))
	if err != nil {
		return letterart.Alphabet{}, 0, nil, err
	}
	var threshold *letterart.Threshold
	if s := c.String("threshold"); s != "" {
		t, err := letterart.ParseThreshold(s)
		if err != nil {
			return letterart.Alphabet{}, 0, nil, err
		}
		threshold = &t
	}
	return alphabet, mode, threshold, nil
}

func parseAdjust(c *cli.Context) letterart.Adjust {
	return letterart.Adjust{
		Gamma:      c.Float64("gamma"),
		Brightness: c.Float64("brightness"),
		Contrast:   c.Float64("contrast"),
		Sharpen:    c.Float64("sharpen"),
		Invert:     c.Bool("invert"),
	}
}

// stdoutWriter returns the writer frames go to and whether stdout is a
// terminal. Terminal output is wrapped so ANSI escapes work on
// platforms without native support.
func stdoutWriter() (io.Writer, bool) {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return colorable.NewColorable(os.Stdout), true
	}
	return os.Stdout, false
}

func termSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 25
	}
	return cols, rows
}

// fitDownscale derives a downscale factor so a w×h image fits the
// terminal, reserving one row for the prompt and never upscaling.
func fitDownscale(w, h int) float64 {
	cols, rows := termSize()
	fx := float64(cols) / float64(w)
	fy := float64(rows-1) / float64(h)
	f := fx
	if fy < fx {
		f = fy
	}
	if f > 1 {
		return 1
	}
	return f
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
