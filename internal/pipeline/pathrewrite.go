package pipeline

import (
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkResolver turns note-relative image and link targets into absolute
// file:// URLs so the page still finds them when loaded from elsewhere,
// e.g. from a temporary file handed to the browser for printing.
//
// Roots are tried in order: typically the note's directory, then the vault
// root, where attachments commonly live. The first root containing the
// target wins; when none does the target resolves against the first root.
type LinkResolver struct {
	roots []string
}

// NewLinkResolver creates a LinkResolver. Empty roots are ignored.
func NewLinkResolver(roots ...string) (*LinkResolver, error) {
	r := &LinkResolver{}
	for _, root := range roots {
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		r.roots = append(r.roots, abs)
	}
	return r, nil
}

// Rewrite rewrites img[src] and a[href] in an HTML fragment. Anchors, URLs
// with a scheme, absolute paths and targets escaping every root are left as
// they are. Only the rewritten attribute changes; every other byte of the
// fragment is copied through. Without roots the fragment is returned
// unchanged.
func (r *LinkResolver) Rewrite(fragment string) (string, error) {
	if len(r.roots) == 0 {
		return fragment, nil
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var buf strings.Builder
	buf.Grow(len(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return buf.String(), nil
		case html.StartTagToken, html.SelfClosingTagToken:
			// Raw is invalidated by Token.
			raw := string(z.Raw())
			buf.WriteString(r.rewriteTag(raw, z.Token()))
		default:
			buf.Write(z.Raw())
		}
	}
}

// rewriteTag returns raw with its link attribute resolved. The attribute is
// replaced in place when its quoted form appears verbatim; otherwise the tag
// is re-serialized from tok.
func (r *LinkResolver) rewriteTag(raw string, tok html.Token) string {
	var key string
	switch tok.DataAtom {
	case atom.Img:
		key = "src"
	case atom.A:
		key = "href"
	default:
		return raw
	}

	for i, attr := range tok.Attr {
		if attr.Key != key {
			continue
		}
		resolved, ok := r.Resolve(attr.Val)
		if !ok {
			return raw
		}
		old := " " + key + `="` + attr.Val + `"`
		if strings.Contains(raw, old) {
			return strings.Replace(raw, old, " "+key+`="`+html.EscapeString(resolved)+`"`, 1)
		}
		tok.Attr[i].Val = resolved
		return tok.String()
	}
	return raw
}

// Resolve returns the file:// URL for a relative target, and false when the
// target should be left alone.
func (r *LinkResolver) Resolve(target string) (string, bool) {
	rel, ok := localPath(target)
	if !ok || len(r.roots) == 0 {
		return "", false
	}

	var fallback string
	for _, root := range r.roots {
		candidate := filepath.Join(root, rel)
		if !isPathUnderDir(candidate, root) {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return fileURL(candidate), true
		}
		if fallback == "" {
			fallback = candidate
		}
	}

	if fallback == "" {
		return "", false
	}
	return fileURL(fallback), true
}

// localPath extracts a relative filesystem path from a link target. Note
// links are often percent-encoded ("my%20image.png"); fragments and queries
// are dropped.
func localPath(target string) (string, bool) {
	if target == "" || strings.HasPrefix(target, "#") || strings.HasPrefix(target, "//") {
		return "", false
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == "" || filepath.IsAbs(u.Path) || strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// isPathUnderDir reports whether path lies inside dir.
func isPathUnderDir(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
