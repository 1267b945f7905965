package services

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"mime/multipart"
	"strings"

	"github.com/disintegration/imaging"
)

// ResizeImage décode l'image reçue en multipart, la redimensionne et la
// réencode en JPEG. Seules les images sont acceptées.
func ResizeImage(file *multipart.FileHeader, width, height, quality int) ([]byte, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return nil, fmt.Errorf("le fichier %s n'est pas une image", file.Filename)
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image illisible: %w", err)
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
