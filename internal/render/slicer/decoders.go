package slicer

// Register a broad set of image decoders so image.Decode can handle whatever
// format the capture function delivers. Blank imports hook the init() of the
// respective packages.
import (
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)
