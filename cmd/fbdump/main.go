package main

import (
	"io"
	"log"
	"os"

	"github.com/bodgit/fbdump"
	"github.com/bodgit/fbdump/format"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newConverter(c *cli.Context) (*fbdump.Converter, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return fbdump.New(fbdump.Options{
		Colors:       c.Int("colors"),
		Quality:      c.Int("quality"),
		Extension:    c.String("ext"),
		Workers:      c.Int("workers"),
		WordsPerLine: c.Int("words-per-line"),
	}, logger)
}

func main() {
	app := cli.NewApp()

	app.Name = "fbdump"
	app.Usage = "Framebuffer memory dump conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.IntFlag{
			Name:    "colors",
			EnvVars: []string{"FBDUMP_COLORS"},
			Usage:   "reduce images to a palette of `N` colors (0 disables)",
		},
		&cli.IntFlag{
			Name:    "quality",
			EnvVars: []string{"FBDUMP_QUALITY"},
			Value:   90,
			Usage:   "JPEG quality",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a memory dump into an image",
			Description: "The image type is chosen from the extension of IMAGE; one of png, jpg, gif, bmp or tiff.",
			ArgsUsage:   "DUMP IMAGE DESCRIPTOR",
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := conv.Convert(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Convert an image into a memory dump and descriptor",
			Description: "",
			ArgsUsage:   "IMAGE DUMP DESCRIPTOR",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "pixel-format",
					Aliases: []string{"f"},
					Value:   format.RGB565.String(),
					Usage:   "pixel format, RGB565 or GRAYSCALE",
				},
				&cli.IntFlag{
					Name:    "words-per-line",
					EnvVars: []string{"FBDUMP_WORDS_PER_LINE"},
					Usage:   "number of words on each dump line (0 fills a 32-bit word)",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := format.Parse(c.String("pixel-format"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				conv, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := conv.Export(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), f); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan a directory and convert every dump found",
			Description: "Each NAME_data.txt with a matching NAME_format.txt is converted to NAME.EXT.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "ext",
					EnvVars: []string{"FBDUMP_EXT"},
					Value:   "png",
					Usage:   "image type to write",
				},
				&cli.IntFlag{
					Name:    "workers",
					EnvVars: []string{"FBDUMP_WORKERS"},
					Value:   10,
					Usage:   "number of concurrent conversions",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, err := newConverter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := conv.Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
