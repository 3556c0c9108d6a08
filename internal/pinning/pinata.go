package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/batiknft/internal/common"
	"github.com/dmitrijs2005/batiknft/internal/netx"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultPinataURL = "https://api.pinata.cloud"

// PinataConfig selects the API endpoint and credentials. A JWT, when set,
// takes precedence over the key/secret pair.
type PinataConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	JWT       string
}

type PinataClient struct {
	cfg    PinataConfig
	client *http.Client
	now    func() time.Time
}

var _ Pinner = (*PinataClient)(nil)

func NewPinataClient(cfg PinataConfig, client *http.Client) *PinataClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultPinataURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &PinataClient{cfg: cfg, client: client, now: time.Now}
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

type pinataMetadata struct {
	Name string `json:"name"`
}

func (c *PinataClient) authorize(req *http.Request) error {
	if c.cfg.JWT != "" {
		if err := checkExpiry(c.cfg.JWT, c.now()); err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)
		return nil
	}

	if c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return fmt.Errorf("%w: pinata credentials are not configured", common.ErrUnauthorized)
	}
	req.Header.Set("pinata_api_key", c.cfg.APIKey)
	req.Header.Set("pinata_secret_api_key", c.cfg.APISecret)
	return nil
}

// checkExpiry reads exp from the token without verifying the signature;
// only Pinata can verify it, this just avoids a doomed upload.
func checkExpiry(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if exp != nil && !now.Before(exp.Time) {
		return fmt.Errorf("%w: pinata jwt expired at %s", common.ErrTokenExpired, exp.Time.UTC().Format(time.RFC3339))
	}
	return nil
}

func (c *PinataClient) do(ctx context.Context, req *http.Request) (string, error) {
	if err := c.authorize(req); err != nil {
		return "", err
	}

	var out pinResponse
	if err := netx.DoJSON(ctx, c.client, req, &out); err != nil {
		return "", err
	}
	if out.IpfsHash == "" {
		return "", errors.New("response has no IpfsHash")
	}
	return out.IpfsHash, nil
}

// PinFile uploads r as a multipart "file" part to pinFileToIPFS.
func (c *PinataClient) PinFile(ctx context.Context, name string, r io.Reader) (string, error) {
	name = PinName(name)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", uploadFailed("pin file", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", uploadFailed("pin file", err)
	}

	meta, _ := json.Marshal(pinataMetadata{Name: name})
	if err := mw.WriteField("pinataMetadata", string(meta)); err != nil {
		return "", uploadFailed("pin file", err)
	}
	if err := mw.Close(); err != nil {
		return "", uploadFailed("pin file", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return "", uploadFailed("pin file", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	cid, err := c.do(ctx, req)
	if err != nil {
		return "", uploadFailed("pin file", err)
	}
	return cid, nil
}

// PinJSON uploads v as the content of a pinJSONToIPFS request.
func (c *PinataClient) PinJSON(ctx context.Context, name string, v any) (string, error) {
	payload, err := json.Marshal(struct {
		Content  any            `json:"pinataContent"`
		Metadata pinataMetadata `json:"pinataMetadata"`
	}{Content: v, Metadata: pinataMetadata{Name: PinName(name)}})
	if err != nil {
		return "", uploadFailed("pin json", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL+"/pinning/pinJSONToIPFS", bytes.NewReader(payload))
	if err != nil {
		return "", uploadFailed("pin json", err)
	}
	req.Header.Set("Content-Type", "application/json")

	cid, err := c.do(ctx, req)
	if err != nil {
		return "", uploadFailed("pin json", err)
	}
	return cid, nil
}
