// Package langdetect recognises properties files. It asks go-enry first
// (extension, file name, shebang) and falls back to a line heuristic for
// files with unknown names such as "app.conf".
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// JavaProperties is the linguist name of the properties language.
const JavaProperties = "Java Properties"

// sniffLimit bounds how much content the heuristic looks at.
const sniffLimit = 8 << 10

// Detect returns the linguist language of a file, or "" when unknown.
func Detect(path string, content []byte) string {
	name := filepath.Base(path)

	// ".properties" is shared with INI, so the extension is rarely "safe".
	byExt := enry.GetLanguagesByExtension(name, content, nil)
	if slices.Contains(byExt, JavaProperties) {
		return JavaProperties
	}
	if len(byExt) == 1 {
		return byExt[0]
	}
	if lang, safe := enry.GetLanguageByFilename(name); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}
	if looksLikeProperties(content) {
		return JavaProperties
	}

	return ""
}

// IsProperties reports whether the file is a properties file.
func IsProperties(path string, content []byte) bool {
	return Detect(path, content) == JavaProperties
}

// IsVendored reports whether path lies in a vendored or third-party tree.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// looksLikeProperties accepts content whose non-blank lines are all
// comments or key/value pairs, with at least two pairs and at least one
// that YAML would not also accept.
func looksLikeProperties(content []byte) bool {
	if len(content) > sniffLimit {
		content = content[:sniffLimit]
	}

	pairs := 0
	distinctive := false

	for _, raw := range bytes.Split(content, []byte("\n")) {
		line := bytes.TrimSpace(raw)
		if len(line) == 0 || line[0] == '#' || line[0] == '!' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) || bytes.HasPrefix(line, []byte("---")) || line[0] == '[' {
			return false
		}

		sep := bytes.IndexAny(line, "=:")
		if sep <= 0 {
			return false
		}

		key := bytes.TrimSpace(line[:sep])
		if len(key) == 0 || bytes.ContainsAny(key, " \t\"{}") {
			return false
		}
		if line[sep] == ':' && sep == len(line)-1 {
			return false // "parent:" opens a YAML mapping
		}

		pairs++
		if line[sep] == '=' || bytes.IndexByte(key, '.') >= 0 {
			distinctive = true
		}
	}

	return pairs >= 2 && distinctive
}
