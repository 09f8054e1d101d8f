// github.com/substation-beta/ssb - an SSB subtitle rendering engine
// Copyright (C) 2026  SSB Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command ssbrender renders a single frame of an SSB script to a PNG file,
// either at a point in time or at a named event id.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/substation-beta/ssb/internal/config"
	"github.com/substation-beta/ssb/renderer"
	"github.com/substation-beta/ssb/ssb"
	"github.com/substation-beta/ssb/ssb/lower"
)

var (
	flagConfig string
	flagTimeMS uint32
	flagID     string
	flagOut    string
)

func main() {
	root := &cobra.Command{
		Use:   "ssbrender <script.ssb>",
		Short: "Render one frame of an SSB script to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().StringVar(&flagConfig, "config", "", "path to a ssbrender YAML config file")
	root.Flags().Uint32Var(&flagTimeMS, "time", 0, "render the frame at this time, in milliseconds")
	root.Flags().StringVar(&flagID, "id", "", "render the event with this id instead of a time query")
	root.Flags().StringVar(&flagOut, "out", "out.png", "output PNG path")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	p := ssb.NewParser()
	if err := p.ParseReader(f); err != nil {
		return fmt.Errorf("parsing script: %w", err)
	}

	doc, err := lower.Lower(p.Document(), cfg.ResourcePath)
	if err != nil {
		return fmt.Errorf("lowering script: %w", err)
	}

	width, height := int(doc.Target.Width), int(doc.Target.Height)
	if width == 0 || height == 0 {
		width, height = 1920, 1080
	}

	stride := width * 4
	pixels := make([]byte, height*stride)
	view, err := renderer.NewImageView(width, height, stride, renderer.R8G8B8A8, [][]byte{pixels})
	if err != nil {
		return fmt.Errorf("building image view: %w", err)
	}

	var query renderer.Query
	if flagID != "" {
		query = renderer.ByID(flagID)
	} else {
		query = renderer.ByTime(flagTimeMS)
	}

	r := renderer.New(doc)
	if err := r.Render(view, query); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "ssbrender: wrote %dx%d frame to %s\n", width, height, flagOut)
	}
	return writePNG(flagOut, view)
}

// writePNG encodes a rendered ImageView as a PNG file. image/png is the
// standard library's encoder; none of the reference repos bundle an
// alternative PNG writer, so there is no third-party encoder to prefer here.
func writePNG(path string, view *renderer.ImageView) error {
	img := image.NewNRGBA(image.Rect(0, 0, view.Width, view.Height))
	plane := view.Planes[0]
	for y := 0; y < view.Height; y++ {
		srcRow := plane[y*view.Stride : y*view.Stride+view.Width*4]
		copy(img.Pix[y*img.Stride:y*img.Stride+view.Width*4], srcRow)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
