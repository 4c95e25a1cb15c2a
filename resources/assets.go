package resources

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	logoDir  = "logo/"
	soundDir = "sound/"
)

// Asset names shipped with the binary.
const (
	LeftLogo    = "SFP.png"
	RightLogo   = "LOGO.png"
	WarningTone = "timer.wav"
)

//go:embed logo/*.png
var logoFS embed.FS

//go:embed sound/*.wav
var soundFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given embedded logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return loadResource(logoFS, logoDir+fileName, &logoCache)
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// LogoFrom prefers fileName inside dir and falls back to the embedded logo.
func LogoFrom(dir, fileName string) fyne.Resource {
	if dir != "" {
		if resource, err := fyne.LoadResourceFromPath(filepath.Join(dir, fileName)); err == nil {
			return resource
		}
	}
	return MustLogo(fileName)
}

// Sound returns the bytes of an embedded sound file.
func Sound(fileName string) ([]byte, error) {
	data, err := soundFS.ReadFile(soundDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load sound %s: %w", fileName, err)
	}
	return data, nil
}

// SoundFrom prefers fileName inside dir and falls back to the embedded sound.
func SoundFrom(dir, fileName string) ([]byte, error) {
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, fileName)); err == nil {
			return data, nil
		}
	}
	return Sound(fileName)
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
