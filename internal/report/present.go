package report

import (
	"github.com/pkg/browser"
	"github.com/pkg/errors"
)

// Presenter shows a saved chart to the user. It runs after the image has been
// written, so a failing or blocking viewer never affects the saved file.
type Presenter interface {
	Present(path string) error
}

// BrowserPresenter opens saved images with the desktop's default viewer.
type BrowserPresenter struct{}

func (BrowserPresenter) Present(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	return nil
}

// NopPresenter is used for headless runs.
type NopPresenter struct{}

func (NopPresenter) Present(string) error { return nil }
