package frame

import (
	"github.com/bmharper/cimg/v2"
)

// Resize maps a frame of arbitrary aspect ratio to exactly dims, without
// stretching the content. Square frames scale directly. Landscape frames
// scale so the height hits the target, then a centered horizontal crop
// removes the excess width; portrait frames are the symmetric case. A
// final resize to exactly dims absorbs the off-by-one that the integer
// crop arithmetic can leave behind.
func Resize(f Frame, dims Dimensions) (Frame, error) {
	rgb, err := f.RGB()
	if err != nil {
		return Frame{}, err
	}

	if rgb.Width == rgb.Height {
		if rgb.Width == dims.Width && rgb.Height == dims.Height {
			return rgb.Clone(), nil
		}
		img := cimg.WrapImage(rgb.Width, rgb.Height, cimg.PixelFormatRGB, rgb.Pixels)
		return fromCImage(cimg.ResizeNew(img, dims.Width, dims.Height, nil)), nil
	}

	img := cimg.WrapImage(rgb.Width, rgb.Height, cimg.PixelFormatRGB, rgb.Pixels)
	var cropped *cimg.Image
	if rgb.Height < rgb.Width {
		// Landscape: height to target, center-crop the width
		scaledWidth := rgb.Width * dims.Height / rgb.Height
		scaled := cimg.ResizeNew(img, scaledWidth, dims.Height, nil)
		crop := (scaledWidth - dims.Width) / 2
		cropped = cropRect(scaled, crop, 0, scaledWidth-crop, dims.Height)
	} else {
		// Portrait: width to target, center-crop the height
		scaledHeight := rgb.Height * dims.Width / rgb.Width
		scaled := cimg.ResizeNew(img, dims.Width, scaledHeight, nil)
		crop := (scaledHeight - dims.Height) / 2
		cropped = cropRect(scaled, 0, crop, dims.Width, scaledHeight-crop)
	}
	return fromCImage(cimg.ResizeNew(cropped, dims.Width, dims.Height, nil)), nil
}

func cropRect(src *cimg.Image, x1, y1, x2, y2 int) *cimg.Image {
	dst := cimg.NewImage(x2-x1, y2-y1, cimg.PixelFormatRGB)
	dst.CopyImageRect(src, x1, y1, x2, y2, 0, 0)
	return dst
}

func fromCImage(img *cimg.Image) Frame {
	return Frame{Width: img.Width, Height: img.Height, Channels: 3, Pixels: img.Pixels}
}
