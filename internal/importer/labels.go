package importer

import (
	"fmt"
	"image"
	"log"
	"regexp"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"cpw-router/pkg/geometry"
)

// DesignatorChars is the character set for component designator OCR.
// Floorplan labels use uppercase letters and digits only.
const DesignatorChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_"

// designatorPattern matches a plausible component designator such as
// Q1, CPW12 or READOUT_3.
var designatorPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{0,15}$`)

// labelMargin is how many extra pixels around a component's bounding
// box are included in the OCR crop, since designators are usually
// printed just outside the metallization.
const labelMargin = 40

// Labeler reads component designators off a scan using Tesseract.
type Labeler struct {
	client *gosseract.Client
}

// NewLabeler creates an OCR labeler.
func NewLabeler() (*Labeler, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Designators are not English words; disable dictionary correction
	// so Q1 does not become QI.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("language_model_penalty_non_dict_word", "0")

	return &Labeler{client: client}, nil
}

// Close releases OCR resources.
func (l *Labeler) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}

// LabelComponents runs OCR near each component in the result and fills
// in Candidate.Label where a plausible designator is found.
func (l *Labeler) LabelComponents(img gocv.Mat, result *Result) error {
	if img.Empty() {
		return fmt.Errorf("empty image")
	}

	labeled := 0
	for i := range result.Components {
		text, err := l.readRegion(img, result.Components[i].Bounds)
		if err != nil {
			continue
		}
		if designator, ok := extractDesignator(text); ok {
			result.Components[i].Label = designator
			labeled++
		}
	}

	log.Printf("OCR labeled %d of %d components", labeled, len(result.Components))
	return nil
}

// readRegion performs OCR on a component's neighborhood.
func (l *Labeler) readRegion(img gocv.Mat, bounds geometry.RectInt) (string, error) {
	x := max(0, bounds.X-labelMargin)
	y := max(0, bounds.Y-labelMargin)
	x2 := min(img.Cols(), bounds.X+bounds.Width+labelMargin)
	y2 := min(img.Rows(), bounds.Y+bounds.Height+labelMargin)
	if x2-x <= 0 || y2-y <= 0 {
		return "", fmt.Errorf("invalid region bounds")
	}

	region := img.Region(image.Rect(x, y, x2, y2))
	defer region.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, region)
	if err != nil {
		return "", fmt.Errorf("failed to encode region: %w", err)
	}
	defer buf.Close()

	if err := l.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := l.client.SetWhitelist(DesignatorChars); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := l.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := l.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.ToUpper(strings.TrimSpace(text)), nil
}

// extractDesignator pulls the first token that looks like a component
// designator out of raw OCR text.
func extractDesignator(text string) (string, bool) {
	for _, field := range strings.Fields(text) {
		if designatorPattern.MatchString(field) {
			return field, true
		}
	}
	return "", false
}
