package forms

import (
	"bytes"
	"image"
	"io"
	"mime/multipart"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxImageSize caps uploaded images
const MaxImageSize = 5 << 20

var imageExts = map[string]string{
	"gif":  ".gif",
	"jpeg": ".jpg",
	"png":  ".png",
	"webp": ".webp",
}

// Upload is a validated image ready to be stored
type Upload struct {
	Data        []byte
	ContentType string
	Ext         string
}

func (u *Upload) Size() int64 {
	return int64(len(u.Data))
}

func (u *Upload) Reader() io.Reader {
	return bytes.NewReader(u.Data)
}

// readImage returns the validation message when the file is not an image
func readImage(header *multipart.FileHeader) (*Upload, string) {
	if header.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	file, err := header.Open()
	if err != nil {
		return nil, ErrInvalidImage
	}
	defer file.Close()
	return DecodeImage(file)
}

// DecodeImage accepts gif, jpeg, png and webp
func DecodeImage(r io.Reader) (*Upload, string) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, ErrInvalidImage
	}
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImage
	}
	ext, ok := imageExts[format]
	if !ok {
		return nil, ErrInvalidImage
	}
	return &Upload{
		Data:        data,
		ContentType: "image/" + format,
		Ext:         ext,
	}, ""
}
