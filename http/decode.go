package http

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// charsetError 不支持的字符集
type charsetError struct {
	charset string
}

func (e *charsetError) Error() string {
	return "Unsupported charset: " + e.charset
}

// readBody 读取请求体，非UTF-8字符集转码为UTF-8
func readBody(r *http.Request) ([]byte, error) {
	var body io.Reader = r.Body

	if ct := r.Header.Get("Content-Type"); ct != "" {
		if _, params, err := mime.ParseMediaType(ct); err == nil {
			if cs := strings.TrimSpace(params["charset"]); cs != "" && !strings.EqualFold(cs, "utf-8") && !strings.EqualFold(cs, "utf8") {
				enc, err := htmlindex.Get(cs)
				if err != nil {
					return nil, &charsetError{charset: cs}
				}
				body = transform.NewReader(r.Body, enc.NewDecoder())
			}
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return data, nil
}
