// Command importtest runs floorplan extraction on a scan image and
// reports what it finds.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"gocv.io/x/gocv"

	"cpw-router/internal/chip"
	"cpw-router/internal/importer"
)

func main() {
	imagePath := flag.String("image", "", "Path to scan image (TIFF, PNG, or JPEG)")
	dieName := flag.String("die", "die-5x5", "Die spec for fiducial alignment")
	threshold := flag.Float64("threshold", 128, "Metallization threshold (0-255)")
	ocr := flag.Bool("ocr", false, "Run designator OCR")
	layoutOut := flag.String("out", "", "Write aligned layout JSON to this path")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: importtest -image <path> [-die die-5x5] [-ocr] [-out layout.json]")
		os.Exit(1)
	}

	spec := chip.GetSpec(*dieName)
	if spec == nil {
		fmt.Fprintf(os.Stderr, "Unknown die spec %q; known: %v\n", *dieName, chip.ListSpecs())
		os.Exit(1)
	}

	opts := importer.DefaultOptions()
	opts.Threshold = *threshold

	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	decoded, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Decoded %s image\n", format)

	img, err := gocv.ImageToMatRGB(decoded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to convert image: %v\n", err)
		os.Exit(1)
	}
	defer img.Close()

	result, err := importer.Extract(img, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scan: %dx%d px\n", result.Width, result.Height)
	fmt.Printf("Components: %d\n", len(result.Components))
	fmt.Printf("Fiducial candidates: %d\n", len(result.Fiducials))

	if *ocr {
		labeler, err := importer.NewLabeler()
		if err != nil {
			fmt.Fprintf(os.Stderr, "OCR init failed: %v\n", err)
			os.Exit(1)
		}
		defer labeler.Close()
		if err := labeler.LabelComponents(img, result); err != nil {
			fmt.Fprintf(os.Stderr, "OCR failed: %v\n", err)
		}
	}

	for i, c := range result.Components {
		label := c.Label
		if label == "" {
			label = "-"
		}
		fmt.Printf("  %2d: bounds (%d,%d %dx%d) hull %d pts label %s\n",
			i, c.Bounds.X, c.Bounds.Y, c.Bounds.Width, c.Bounds.Height,
			len(c.Footprint), label)
	}

	detected, reference, err := importer.MatchFiducials(result.Fiducials, spec.Fiducials)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fiducial matching failed: %v\n", err)
		os.Exit(1)
	}
	transform, inliers, err := importer.FitAlignment(detected, reference, 2000, 0.05)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Alignment failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Alignment: %d/%d fiducials inline\n", len(inliers), len(detected))
	fmt.Printf("  [% .6f % .6f % .4f]\n", transform.A, transform.B, transform.TX)
	fmt.Printf("  [% .6f % .6f % .4f]\n", transform.C, transform.D, transform.TY)

	if *layoutOut != "" {
		reg, err := importer.ToRegistry(result, transform)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Registry conversion failed: %v\n", err)
			os.Exit(1)
		}
		if err := reg.Save(*layoutOut); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write layout: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d components)\n", *layoutOut, len(reg.Components))
	}
}
