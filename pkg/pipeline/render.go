package pipeline

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/Reasonofmoon/darlkom-banana/pkg/errors"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/compose"
)

// jpegQuality is the encoder quality for jpeg artifacts.
const jpegQuality = 92

// Plan resolves the compose plan for in under the given mode.
func Plan(in Input, mode string) (compose.Plan, error) {
	switch mode {
	case ModeRender, ModeThumbnail:
		if in.Descriptor == nil {
			return compose.Plan{}, errors.New(errors.ErrCodeInvalidInput, "%s mode needs a descriptor", mode)
		}
		if mode == ModeThumbnail {
			return compose.PlanThumbnail(*in.Descriptor), nil
		}
		return compose.PlanSingle(*in.Descriptor), nil
	case ModeHybrid:
		return compose.PlanHybrid(in.Roles)
	}
	return compose.Plan{}, ValidateMode(mode)
}

// Encode writes img in the named format.
func Encode(img image.Image, format string) ([]byte, error) {
	f, err := imagingFormat(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}

// FormatFromPath infers an artifact format from a file extension.
func FormatFromPath(path string) (string, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q", filepath.Base(path))
	}
	return strings.ToLower(f.String()), nil
}

// Ext returns the file extension for a format, including the dot.
func Ext(format string) string {
	if format == FormatJPEG {
		return ".jpg"
	}
	return "." + format
}

func imagingFormat(format string) (imaging.Format, error) {
	switch format {
	case FormatPNG:
		return imaging.PNG, nil
	case FormatJPEG:
		return imaging.JPEG, nil
	case FormatGIF:
		return imaging.GIF, nil
	case FormatTIFF:
		return imaging.TIFF, nil
	case FormatBMP:
		return imaging.BMP, nil
	}
	return 0, ValidateFormat(format)
}
