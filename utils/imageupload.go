package utils

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const uploadRoot = "./static/uploads"

// SaveUploadedImage decodes the image under formKey, writes the original and
// a 300px-wide thumbnail under static/uploads/<subdir>/, and returns their
// public paths. A missing file is reported as an error; callers treat the
// photo as optional.
func SaveUploadedImage(r *http.Request, formKey, subdir, id string) (photo, thumb string, err error) {
	file, header, err := r.FormFile(formKey)
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("cannot decode image: %w", err)
	}

	dir := filepath.Join(uploadRoot, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}

	origName := id + ext
	thumbName := id + "_thumb" + ext

	if err := imaging.Save(img, filepath.Join(dir, origName)); err != nil {
		return "", "", fmt.Errorf("saving image failed: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(dir, thumbName)); err != nil {
		return "", "", fmt.Errorf("saving thumbnail failed: %w", err)
	}

	return "/uploads/" + subdir + "/" + origName, "/uploads/" + subdir + "/" + thumbName, nil
}
