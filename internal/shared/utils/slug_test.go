package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Nguyễn Nhật Ánh", "nguyen-nhat-anh"},
		{"Tô Hoài", "to-hoai"},
		{"NXB Kim Đồng", "nxb-kim-dong"},
		{"  Dế Mèn   Phiêu Lưu Ký  ", "de-men-phieu-luu-ky"},
		{"Sách & Truyện (2024)!", "sach-truyen-2024"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{"Tô Hoài", "Sách & Truyện (2024)!", "Kệ A - Tầng 2"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestSlugifyFileName(t *testing.T) {
	assert.Equal(t, "anh-bia", SlugifyFileName("Ảnh bìa.PNG"))
	assert.Equal(t, "bia-sach-dep", SlugifyFileName("Bìa sách đẹp.jpeg"))
	// Không có extension thì slugify nguyên tên
	assert.Equal(t, "anh-bia", SlugifyFileName("Ảnh bìa"))
	// Dotfile: dấu chấm đầu tiên không phải extension separator
	assert.Equal(t, "env", SlugifyFileName(".env"))
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Nguyen Nhat Anh", RemoveDiacritics("Nguyễn Nhật Ánh"))
	assert.Equal(t, "DUONG", RemoveDiacritics("ĐƯỜNG"))
	assert.Equal(t, "plain ascii", RemoveDiacritics("plain ascii"))
}
