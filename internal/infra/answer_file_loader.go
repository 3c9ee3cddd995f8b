package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// AnswerFileは一括チェック・PDF生成の入力となる回答ファイルです。
type AnswerFile struct {
	Path      string         `yaml:"-"`
	SessionID string         `yaml:"session_id" validate:"omitempty,uuid"`
	Answers   map[string]any `yaml:"answers" validate:"required"`
}

// ScriptStepは操作スクリプトの1操作です。
type ScriptStep struct {
	Action string `yaml:"action" validate:"required,oneof=set next back jump generate"`
	Key    string `yaml:"key" validate:"required_if=Action set"`
	Value  any    `yaml:"value"`
	Step   int    `yaml:"step" validate:"required_if=Action jump"`
}

// ActionScriptはウィザード操作を再現するためのスクリプトです。
type ActionScript struct {
	Name  string       `yaml:"name"`
	Steps []ScriptStep `yaml:"steps" validate:"required,min=1,dive"`
}

var fileValidate = validator.New()

type AnswerFileLoader struct {
	extensions []string
}

func NewAnswerFileLoader(extensions []string) *AnswerFileLoader {
	return &AnswerFileLoader{extensions: extensions}
}

func (f *AnswerFileLoader) LoadAnswerFile(path string) (AnswerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AnswerFile{}, fmt.Errorf("回答ファイルの読み込みに失敗しました: %w", err)
	}
	var file AnswerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return AnswerFile{}, fmt.Errorf("回答ファイルのYAML解析に失敗しました(%s): %w", path, err)
	}
	if err := fileValidate.Struct(file); err != nil {
		return AnswerFile{}, fmt.Errorf("回答ファイルの形式が不正です(%s): %w", path, err)
	}
	file.Path = path
	return file, nil
}

func (f *AnswerFileLoader) LoadActionScript(path string) (ActionScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ActionScript{}, fmt.Errorf("操作スクリプトの読み込みに失敗しました: %w", err)
	}
	var script ActionScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return ActionScript{}, fmt.Errorf("操作スクリプトのYAML解析に失敗しました(%s): %w", path, err)
	}
	if err := fileValidate.Struct(script); err != nil {
		return ActionScript{}, fmt.Errorf("操作スクリプトの形式が不正です(%s): %w", path, err)
	}
	return script, nil
}

// ListAnswerFilePathsは指定ディレクトリ配下の回答ファイルを再帰的に取得します。
func (f *AnswerFileLoader) ListAnswerFilePaths(dir string) ([]string, error) {
	var paths []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && slices.Contains(f.extensions, strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return paths, fmt.Errorf("ディレクトリの走査に失敗しました: %w", err)
	}

	slices.Sort(paths)
	return paths, nil
}
