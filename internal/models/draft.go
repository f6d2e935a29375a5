package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidDataURL возвращается, если строка не является data URL с base64
var ErrInvalidDataURL = errors.New("invalid base64 data URL")

// Draft - временное состояние формы: текст, выбранное изображение и его превью
type Draft struct {
	Text             string
	Image            []byte
	ImageContentType string
	ImageName        string
}

// HasImage сообщает, выбрано ли изображение
func (d *Draft) HasImage() bool {
	return len(d.Image) > 0
}

// IsEmpty - пустой текст и нет изображения, отправлять нечего
func (d *Draft) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == "" && !d.HasImage()
}

// ImageBase64 кодирует изображение в стандартный base64 без префикса data:
func (d *Draft) ImageBase64() string {
	if !d.HasImage() {
		return ""
	}
	return base64.StdEncoding.EncodeToString(d.Image)
}

// PreviewDataURL возвращает data URL для превью изображения в форме
func (d *Draft) PreviewDataURL() string {
	if !d.HasImage() {
		return ""
	}
	ct := d.ImageContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return "data:" + ct + ";base64," + d.ImageBase64()
}

// ToCreate собирает тело запроса для внешнего API
func (d *Draft) ToCreate() ReportCreate {
	return ReportCreate{
		RawText:     d.Text,
		ImageBase64: d.ImageBase64(),
	}
}

// Reset очищает черновик после успешной отправки
func (d *Draft) Reset() {
	*d = Draft{}
}

// SetImageFromDataURL восстанавливает изображение из data URL (повторная отправка формы)
func (d *Draft) SetImageFromDataURL(dataURL string) error {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return ErrInvalidDataURL
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return ErrInvalidDataURL
	}
	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ErrInvalidDataURL
	}
	d.Image = img
	d.ImageContentType = contentType
	return nil
}
