package split

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"stylesplit/config"
	"stylesplit/mozdoc"
	"stylesplit/state"
)

// buildDocumentPath returns output file name for formats producing single
// document per source.
func buildDocumentPath(src, dst string, env *state.LocalEnv) string {
	return filepath.Join(determineOutputDir(src, dst, env), buildBaseName(src, env)+env.Format.Ext())
}

// buildSectionPath returns output file name for a single section (index
// starts with 1) using either user-defined template or default naming scheme.
// Template result may contain subdirectories, every path segment is cleaned
// and if requested transliterated.
func buildSectionPath(src, dst string, index int, s mozdoc.Section, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	defaultPath := filepath.Join(outDir, buildBaseName(src, env), fmt.Sprintf("%02d-%s.css", index, sectionKind(s)))

	if env.Cfg.Split.OutputNameTemplate == "" {
		return defaultPath
	}

	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Split.OutputNameTemplate, Values{
		Source: trimStyleExt(filepath.Base(src), env.Cfg.Split.Extensions),
		Index:  index,
		Kind:   sectionKind(s),
		Rules:  buildRules(s),
		Format: env.Format.String(),
	})
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return defaultPath
	}
	if strings.TrimSpace(expanded) == "" {
		return defaultPath
	}
	return assemblePathWithSubdirs(outDir, filepath.FromSlash(expanded), ".css", env)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildBaseName(src string, env *state.LocalEnv) string {
	return cleanPathSegment(trimStyleExt(filepath.Base(src), env.Cfg.Split.Extensions), env)
}

func assemblePathWithSubdirs(outDir, expandedName, ext string, env *state.LocalEnv) string {
	pathSegments := splitPath(expandedName)
	if len(pathSegments) == 0 {
		return outDir
	}

	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)
	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}
	dirParts = append(dirParts, cleanPathSegment(pathSegments[len(pathSegments)-1], env)+ext)
	return filepath.Join(dirParts...)
}

// splitPath breaks path into segments dropping empty ones and references
// to parent or current directory.
func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); ; head, tail = filepath.Split(head) {
		if tail != "" && tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Split.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
