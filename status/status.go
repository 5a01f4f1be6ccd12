// Package status models the JSON document a server returns to a status request.
package status

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const faviconPrefix = "data:image/png;base64,"

var ErrNoFavicon = errors.New("server has no favicon")

type (
	Response struct {
		Version            Version     `json:"version"`
		Players            Players     `json:"players"`
		Description        Description `json:"description"`
		Favicon            string      `json:"favicon,omitempty"`
		EnforcesSecureChat bool        `json:"enforcesSecureChat,omitempty"`
		PreviewsChat       bool        `json:"previewsChat,omitempty"`
	}

	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	}

	Players struct {
		Max    int      `json:"max"`
		Online int      `json:"online"`
		Sample []Player `json:"sample,omitempty"`
	}

	// Player is one entry of the player sample. Plugins often fill the
	// sample with MOTD lines whose ids are not UUIDs; those keep ID as
	// uuid.Nil and the id as sent in RawID.
	Player struct {
		Name  string
		ID    uuid.UUID
		RawID string
	}

	player struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}
)

func (p *Player) UnmarshalJSON(data []byte) error {
	var raw player
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = raw.Name
	p.ID, p.RawID = uuid.Nil, ""

	id, err := uuid.Parse(raw.ID)
	if err != nil {
		p.RawID = raw.ID
		return nil
	}

	p.ID = id
	return nil
}

func (p Player) MarshalJSON() ([]byte, error) {
	raw := player{Name: p.Name, ID: p.RawID}
	if p.ID != uuid.Nil || raw.ID == "" {
		raw.ID = p.ID.String()
	}

	return json.Marshal(raw)
}

// Parse decodes a status JSON document.
func Parse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse status response: %w", err)
	}

	return &resp, nil
}

func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// PlayerNames returns the names in the player sample, in server order.
func (r *Response) PlayerNames() []string {
	names := make([]string, 0, len(r.Players.Sample))
	for _, p := range r.Players.Sample {
		names = append(names, p.Name)
	}

	return names
}

// FaviconPNG decodes the base64 data URI in Favicon.
func (r *Response) FaviconPNG() ([]byte, error) {
	if r.Favicon == "" {
		return nil, ErrNoFavicon
	}

	_, data, found := strings.Cut(r.Favicon, "base64,")
	if !found {
		return nil, fmt.Errorf("favicon is not a base64 data URI")
	}

	// some servers wrap the payload like a PEM block
	data = strings.ReplaceAll(data, "\n", "")

	png, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode favicon: %w", err)
	}

	return png, nil
}

// EncodeFavicon turns PNG bytes into the data URI servers put in Favicon.
func EncodeFavicon(png []byte) string {
	return faviconPrefix + base64.StdEncoding.EncodeToString(png)
}
