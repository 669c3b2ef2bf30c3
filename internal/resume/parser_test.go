package resume

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubExtractor struct {
	text   string
	format string
	err    error
	paths  []string
}

func (s *stubExtractor) Extract(_ context.Context, path string) (string, string, error) {
	s.paths = append(s.paths, path)
	return s.text, s.format, s.err
}

func TestParseTextContactAndSkills(t *testing.T) {
	record := NewParser(nil, nil).ParseText("姓名：张三\n电话：13812345678\nPython Java Docker")

	if record.PersonalInfo.Name != "张三" {
		t.Fatalf("unexpected name: %q", record.PersonalInfo.Name)
	}
	if record.PersonalInfo.Phone != "13812345678" {
		t.Fatalf("unexpected phone: %q", record.PersonalInfo.Phone)
	}
	if want := []string{"Python", "Java", "Docker"}; !reflect.DeepEqual(record.Skills, want) {
		t.Fatalf("expected skills %v, got %v", want, record.Skills)
	}
}

func TestParseTextEmptyInputKeepsCollections(t *testing.T) {
	record := NewParser(nil, nil).ParseText("")

	if record.Education == nil || record.WorkExperience == nil || record.ProjectExperience == nil ||
		record.Skills == nil || record.Certificates == nil {
		t.Fatalf("expected non-nil collections, got %#v", record)
	}
	if record.PersonalInfo != (PersonalInfo{}) || record.Summary != "" {
		t.Fatalf("expected empty fields, got %#v", record)
	}
}

func TestParseTextLogsSections(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	parser := NewParser(nil, zap.New(core))

	parser.ParseText("工作经历\n某公司 工程师\n项目经历\n推荐系统\n技能：Go")

	if got := logs.FilterMessage("work experience section found; items are not itemized").Len(); got != 1 {
		t.Fatalf("expected work section log, got %d", got)
	}
	if got := logs.FilterMessage("project experience section found; items are not itemized").Len(); got != 1 {
		t.Fatalf("expected project section log, got %d", got)
	}
}

func TestParseFileSetsSource(t *testing.T) {
	extractor := &stubExtractor{text: "姓名：王五\n本科 复旦大学\nGo", format: "pdf"}
	parser := NewParser(extractor, nil)

	record, err := parser.ParseFile(context.Background(), "/tmp/cv.pdf")
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}

	if record.FilePath != "/tmp/cv.pdf" || record.FileFormat != "pdf" {
		t.Fatalf("unexpected source fields: %q %q", record.FilePath, record.FileFormat)
	}
	if record.PersonalInfo.Name != "王五" {
		t.Fatalf("unexpected name: %q", record.PersonalInfo.Name)
	}
	if want := []Education{{Degree: "本科", School: "复旦大学"}}; !reflect.DeepEqual(record.Education, want) {
		t.Fatalf("expected %+v, got %+v", want, record.Education)
	}
	if !reflect.DeepEqual(extractor.paths, []string{"/tmp/cv.pdf"}) {
		t.Fatalf("unexpected extractor calls: %v", extractor.paths)
	}
}

func TestParseFilePropagatesExtractorError(t *testing.T) {
	sentinel := errors.New("file not found")
	parser := NewParser(&stubExtractor{err: sentinel}, nil)

	if _, err := parser.ParseFile(context.Background(), "missing.pdf"); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}
