package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"board-customizer/config"
	"board-customizer/models"
	"board-customizer/utils"
)

// maxCMSResponseBytes bounds the size of a CMS API response
const maxCMSResponseBytes = 8 << 20

// CMSService fetches the board customizer singleton from the Prismic REST API
// Implements ContentProvider
type CMSService struct {
	endpoint     string
	accessToken  string
	documentType string
	client       *http.Client
}

// NewCMSService creates a new CMSService
func NewCMSService(cfg config.CMSConfig, client *http.Client) *CMSService {
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	return &CMSService{
		endpoint:     cfg.Endpoint(),
		accessToken:  cfg.AccessToken,
		documentType: cfg.DocumentType,
		client:       client,
	}
}

// Ensure CMSService implements ContentProvider
var _ ContentProvider = (*CMSService)(nil)

type prismicRef struct {
	ID          string `json:"id"`
	Ref         string `json:"ref"`
	IsMasterRef bool   `json:"isMasterRef"`
}

type prismicAPI struct {
	Refs []prismicRef `json:"refs"`
}

type prismicImage struct {
	URL        string `json:"url"`
	Alt        string `json:"alt"`
	Dimensions struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"dimensions"`
}

type prismicOption struct {
	UID      string       `json:"uid"`
	Label    string       `json:"label"`
	Name     string       `json:"name"`
	Texture  prismicImage `json:"texture"`
	Color    string       `json:"color"`
	Colors   string       `json:"colors"`
	HexValue string       `json:"hex_value"`
}

type prismicDocument struct {
	ID                  string `json:"id"`
	Type                string `json:"type"`
	LastPublicationDate string `json:"last_publication_date"`
	Data                struct {
		Wheels  []prismicOption `json:"wheels"`
		Decks   []prismicOption `json:"decks"`
		Texture []prismicOption `json:"texture"`
	} `json:"data"`
}

type prismicSearchResponse struct {
	Results []prismicDocument `json:"results"`
}

// GetBoardCustomizer fetches the singleton document at the master ref
func (s *CMSService) GetBoardCustomizer(ctx context.Context) (*models.BoardCustomizer, error) {
	ref, err := s.masterRef(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}

	doc, err := s.searchSingle(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}

	out := &models.BoardCustomizer{
		ID:                  doc.ID,
		LastPublicationDate: doc.LastPublicationDate,
		Wheels:              convertOptions("wheels", doc.Data.Wheels),
		Decks:               convertOptions("decks", doc.Data.Decks),
		Textures:            convertOptions("texture", doc.Data.Texture),
	}

	log.Debug().Msgf("✓ Loaded %s document %s: %d wheels, %d decks, %d textures",
		s.documentType, out.ID, len(out.Wheels), len(out.Decks), len(out.Textures))
	return out, nil
}

func (s *CMSService) masterRef(ctx context.Context) (string, error) {
	var api prismicAPI
	if err := s.getJSON(ctx, s.endpoint, nil, &api); err != nil {
		return "", fmt.Errorf("failed to fetch api refs: %w", err)
	}
	for _, ref := range api.Refs {
		if ref.IsMasterRef && ref.Ref != "" {
			return ref.Ref, nil
		}
	}
	return "", fmt.Errorf("no master ref in api response")
}

func (s *CMSService) searchSingle(ctx context.Context, ref string) (*prismicDocument, error) {
	params := url.Values{}
	params.Set("ref", ref)
	params.Set("q", fmt.Sprintf(`[[at(document.type,"%s")]]`, s.documentType))
	params.Set("pageSize", "1")

	var resp prismicSearchResponse
	if err := s.getJSON(ctx, s.endpoint+"/documents/search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search %s document: %w", s.documentType, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("no %s document published", s.documentType)
	}
	return &resp.Results[0], nil
}

func (s *CMSService) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	if s.accessToken != "" {
		params.Set("access_token", s.accessToken)
	}
	target := endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCMSResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// convertOptions maps CMS group items to options, dropping items without uid
func convertOptions(field string, items []prismicOption) []models.CustomizerOption {
	options := make([]models.CustomizerOption, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		uid := strings.TrimSpace(item.UID)
		if uid == "" {
			log.Warn().Msgf("⚠️  Skipping %s item %d: missing uid", field, i)
			continue
		}
		if seen[uid] {
			log.Warn().Msgf("⚠️  Skipping %s item %d: duplicate uid %s", field, i, uid)
			continue
		}
		seen[uid] = true

		options = append(options, models.CustomizerOption{
			UID:   uid,
			Label: firstNonEmpty(item.Label, item.Name, uid),
			Texture: models.ImageField{
				URL: item.Texture.URL,
				Alt: item.Texture.Alt,
				Dimensions: models.ImageDimensions{
					Width:  item.Texture.Dimensions.Width,
					Height: item.Texture.Dimensions.Height,
				},
			},
			Color: utils.NormalizeHexColor(firstNonEmpty(item.Color, item.Colors, item.HexValue)),
		})
	}
	return options
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
