package digest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"time"

	Logger "github.com/codenewsio/codenews/utils/log"
	"github.com/pkg/errors"
)

const telegraphAPIBase = "https://api.telegra.ph"

// Publisher publishes a rendered digest somewhere readers can reach it and
// returns the public URL.
type Publisher interface {
	Publish(title string, htmlContent string) (url string, err error)
}

// TelegraphPublisher publishes digests as Telegraph pages. The access token is
// created lazily on first publish and reused afterwards; set TELEGRAPH_TOKEN
// to pin an existing account.
type TelegraphPublisher struct {
	ShortName  string
	AuthorName string

	client      *http.Client
	accessToken string
}

func NewTelegraphPublisher(authorName string) *TelegraphPublisher {
	return &TelegraphPublisher{
		ShortName:   "CodeNews",
		AuthorName:  authorName,
		client:      &http.Client{Timeout: 30 * time.Second},
		accessToken: os.Getenv("TELEGRAPH_TOKEN"),
	}
}

type telegraphResponse struct {
	Ok     bool            `json:"ok"`
	Error  string          `json:"error"`
	Result json.RawMessage `json:"result"`
}

func (p *TelegraphPublisher) call(method string, params url.Values, result interface{}) error {
	resp, err := p.client.Post(
		telegraphAPIBase+"/"+method,
		"application/x-www-form-urlencoded",
		bytes.NewBufferString(params.Encode()),
	)
	if err != nil {
		return errors.Wrap(err, "fail to call telegraph api "+method)
	}
	defer resp.Body.Close()

	var body telegraphResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return errors.Wrap(err, "fail to decode telegraph response")
	}
	if !body.Ok {
		return errors.Errorf("telegraph api error on %s: %s", method, body.Error)
	}
	return json.Unmarshal(body.Result, result)
}

func (p *TelegraphPublisher) ensureAccount() error {
	if p.accessToken != "" {
		return nil
	}

	params := url.Values{}
	params.Set("short_name", p.ShortName)
	params.Set("author_name", p.AuthorName)

	var account struct {
		AccessToken string `json:"access_token"`
	}
	if err := p.call("createAccount", params, &account); err != nil {
		return err
	}

	p.accessToken = account.AccessToken
	Logger.Log.Info("created new telegraph account")
	return nil
}

// Publish creates a Telegraph page from pre-converted HTML content and returns
// its public URL.
func (p *TelegraphPublisher) Publish(title string, htmlContent string) (string, error) {
	if err := p.ensureAccount(); err != nil {
		return "", err
	}

	nodes, err := htmlToNodes(htmlContent)
	if err != nil {
		return "", err
	}
	contentJSON, err := json.Marshal(nodes)
	if err != nil {
		return "", errors.Wrap(err, "fail to marshal telegraph content")
	}

	params := url.Values{}
	params.Set("access_token", p.accessToken)
	params.Set("title", title)
	params.Set("author_name", p.AuthorName)
	params.Set("content", string(contentJSON))
	params.Set("return_content", "false")

	var page struct {
		URL string `json:"url"`
	}
	if err := p.call("createPage", params, &page); err != nil {
		return "", err
	}
	return page.URL, nil
}
