package sanitizer

import (
	"bytes"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// prescanBytes is how far into a body a meta charset is looked for.
const prescanBytes = 1024

// SanitizeBytes decodes a fetched body to UTF-8 and sanitizes it.
func SanitizeBytes(body []byte, contentType string) string {
	return Sanitize(Decode(body, contentType))
}

// Decode converts body to UTF-8. The charset comes from the Content-Type
// header or a meta prescan; when both are silent and the body is not valid
// UTF-8 it is detected.
func Decode(body []byte, contentType string) string {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && name == "windows-1252" && !declaresCharset(body) {
		if detected := DetectCharset(body); detected != "" {
			if e, canonical := charset.Lookup(detected); e != nil {
				enc, name = e, canonical
			}
		}
	}
	if name == "utf-8" {
		return strings.ToValidUTF8(string(body), "�")
	}

	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "�")
	}
	return string(out)
}

// declaresCharset reports whether the head of body carries a meta charset,
// either as a charset attribute or inside an http-equiv content value.
func declaresCharset(body []byte) bool {
	if len(body) > prescanBytes {
		body = body[:prescanBytes]
	}
	z := xhtml.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return false
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" {
				continue
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "charset":
					return true
				case "content":
					if strings.Contains(strings.ToLower(string(val)), "charset=") {
						return true
					}
				}
			}
		}
	}
}

// DetectCharset guesses the charset of body, or returns "" if unsure.
func DetectCharset(body []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(body)
	if err != nil || result == nil || result.Confidence < 50 {
		return ""
	}
	return strings.ToLower(result.Charset)
}

// IsHTML reports whether a response is an HTML document, by header first and
// content sniffing second.
func IsHTML(body []byte, contentType string) bool {
	switch mediaType(contentType) {
	case "text/html", "application/xhtml+xml":
		return true
	}
	mt := mimetype.Detect(body)
	return mt.Is("text/html") || mt.Is("application/xhtml+xml")
}

// IsReadable reports whether a response carries text worth summarizing.
// Binary payloads such as PDFs or images are not.
func IsReadable(body []byte, contentType string) bool {
	if len(body) == 0 {
		return false
	}
	if IsHTML(body, contentType) {
		return true
	}
	for mt := mimetype.Detect(body); mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}
