// internal/pdf/logo.go
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
)

const maxLogoBytes = 2 << 20

// fetchLogo downloads and validates the optional logo asset. The caller
// treats any error as a soft failure and falls back to text branding.
func (g *Generator) fetchLogo() ([]byte, string, error) {
	if g.LogoURL == "" {
		return nil, "", fmt.Errorf("no logo configured")
	}

	client := g.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(g.LogoURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("logo fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxLogoBytes {
		return nil, "", fmt.Errorf("logo exceeds %d bytes", maxLogoBytes)
	}

	// Validate before handing bytes to the PDF engine.
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	switch format {
	case "png":
		return data, "PNG", nil
	case "jpeg":
		return data, "JPG", nil
	}
	return nil, "", fmt.Errorf("unsupported logo format %q", format)
}
