package segment

import (
	"image"
	stddraw "image/draw"

	"golang.org/x/image/draw"
)

// lumaR, lumaG, lumaB are Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Raster is a decoded map image prepared for segmentation: an RGBA
// pixel buffer plus a precomputed luminance channel. The engine never
// performs image I/O; callers decode the map however they like and
// hand the result to NewRaster.
type Raster struct {
	width  int
	height int
	pix    []uint8   // RGBA, 4 bytes per pixel
	luma   []float32 // luminance in [0, 1], one per pixel
}

// NewRaster wraps a decoded image for segmentation.
// Returns ErrUndecodableRaster for a nil or empty image.
func NewRaster(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, ErrUndecodableRaster
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 1 || h < 1 {
		return nil, ErrUndecodableRaster
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) || nrgba.Stride != w*4 {
		converted := image.NewNRGBA(image.Rect(0, 0, w, h))
		stddraw.Draw(converted, converted.Bounds(), img, bounds.Min, stddraw.Src)
		nrgba = converted
	}

	r := &Raster{
		width:  w,
		height: h,
		pix:    nrgba.Pix,
		luma:   make([]float32, w*h),
	}
	for i := 0; i < w*h; i++ {
		p := nrgba.Pix[i*4:]
		r.luma[i] = float32(lumaR*float64(p[0])+lumaG*float64(p[1])+lumaB*float64(p[2])) / 255
	}
	return r, nil
}

// NewWorkingRaster wraps img like NewRaster but first resamples any
// image whose largest dimension exceeds maxDim down to that size
// (aspect preserved). This keeps pyramid and flood-fill latency
// independent of the uploaded map resolution; normalized coordinates
// make the resample invisible to callers.
func NewWorkingRaster(img image.Image, maxDim int) (*Raster, error) {
	if img == nil {
		return nil, ErrUndecodableRaster
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 1 || h < 1 {
		return nil, ErrUndecodableRaster
	}
	if maxDim < 1 || (w <= maxDim && h <= maxDim) {
		return NewRaster(img)
	}

	dw, dh := w, h
	if w >= h {
		dw = maxDim
		dh = max(1, h*maxDim/w)
	} else {
		dh = maxDim
		dw = max(1, w*maxDim/h)
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
	return NewRaster(scaled)
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Luma returns the luminance in [0, 1] at (x, y), clamped at the edges.
func (r *Raster) Luma(x, y int) float64 {
	x, y = r.clamp(x, y)
	return float64(r.luma[y*r.width+x])
}

// RGBA returns the 8-bit color channels at (x, y), clamped at the edges.
func (r *Raster) RGBA(x, y int) (uint8, uint8, uint8, uint8) {
	x, y = r.clamp(x, y)
	p := r.pix[(y*r.width+x)*4:]
	return p[0], p[1], p[2], p[3]
}

func (r *Raster) clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= r.width {
		x = r.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= r.height {
		y = r.height - 1
	}
	return x, y
}
