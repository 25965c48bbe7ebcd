package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const (
	captureWidth   = 1920
	captureHeight  = 1080
	captureTimeout = 30 * time.Second
)

// Capturer screenshots rendered HTML pages in a headless browser at
// the video resolution.
type Capturer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func NewCapturer() (*Capturer, error) {
	l := launcher.New().Headless(true)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("error connecting to browser: %w", err)
	}

	return &Capturer{launcher: l, browser: browser}, nil
}

func (c *Capturer) Close() {
	if c.browser != nil {
		_ = c.browser.Close()
	}
	if c.launcher != nil {
		c.launcher.Cleanup()
	}
}

// Capture renders the HTML file at htmlPath and writes a PNG frame to
// pngPath.
func (c *Capturer) Capture(htmlPath, pngPath string) error {
	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", htmlPath, err)
	}

	page, err := c.newPage()
	if err != nil {
		return err
	}
	defer func() { _ = page.Close() }()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             captureWidth,
		Height:            captureHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("failed to set viewport: %w", err)
	}

	if err := page.Navigate("file://" + absPath); err != nil {
		return fmt.Errorf("error navigating to %s: %w", absPath, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("error waiting for page load: %w", err)
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", htmlPath, err)
	}

	if err := os.WriteFile(pngPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", pngPath, err)
	}
	return nil
}

func (c *Capturer) newPage() (page *rod.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to create page: %v", r)
		}
	}()
	page = c.browser.MustPage().Timeout(captureTimeout)
	return page, nil
}
