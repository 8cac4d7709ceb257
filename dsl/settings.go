package dsl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Settings 是作业文件中可配置的全部项，未出现的项为空字符串。
type Settings struct {
	Exam        string
	Institution string
	Logo        string
	Records     string
	Sheet       string
	Output      string
	Backend     string
	Preview     string
	Debug       string
}

// pathKeys 中的取值是文件路径，相对路径按作业文件所在目录解析。
var pathKeys = map[string]bool{"logo": true, "records": true, "output": true, "preview": true, "debug": true}

func (s *Settings) field(key string) *string {
	switch key {
	case "exam":
		return &s.Exam
	case "institution":
		return &s.Institution
	case "logo":
		return &s.Logo
	case "records":
		return &s.Records
	case "sheet":
		return &s.Sheet
	case "output":
		return &s.Output
	case "backend":
		return &s.Backend
	case "preview":
		return &s.Preview
	case "debug":
		return &s.Debug
	default:
		return nil
	}
}

// Settings 把作业中的赋值转换为 Settings；未知或重复的键会报错。
// baseDir 非空时用于解析相对路径。
func (j *Job) Settings(baseDir string) (Settings, error) {
	var s Settings
	seen := map[string]bool{}
	for _, a := range j.Entries {
		key := strings.ToLower(a.Key)
		dst := s.field(key)
		if dst == nil {
			return Settings{}, fmt.Errorf("%s: 未知配置项 %q", a.Pos, a.Key)
		}
		if seen[key] {
			return Settings{}, fmt.Errorf("%s: 配置项 %q 重复", a.Pos, a.Key)
		}
		seen[key] = true
		val := strings.TrimSpace(a.Value.Text())
		if pathKeys[key] && val != "" && baseDir != "" && !filepath.IsAbs(val) {
			val = filepath.Join(baseDir, val)
		}
		*dst = val
	}
	return s, nil
}

// Load 读取并解析作业文件，相对路径以文件所在目录为基准。
func Load(path string) (Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("无法打开作业文件 %s: %w", path, err)
	}
	defer file.Close()

	job, err := Parse(file)
	if err != nil {
		return Settings{}, fmt.Errorf("解析作业文件 %s 失败: %w", path, err)
	}
	return job.Settings(filepath.Dir(path))
}
