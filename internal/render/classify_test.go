package render

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/studycards-backend/internal/domain"
	"github.com/yungbote/studycards-backend/internal/logger"
)

type stubTextClient struct {
	response string
	err      error
}

func (s *stubTextClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func testVocab() KeywordVocab {
	return DefaultConfig().Keywords
}

func TestClassifyOfflineMathKeyword(t *testing.T) {
	c := NewClassifier(logger.Nop(), nil, testVocab(), 0)
	cls := c.Classify(context.Background(), "二次函数的导数与切线斜率")
	if cls.Subject != domain.SubjectMath {
		t.Fatalf("expected math, got %s", cls.Subject)
	}
	if cls.Confidence != 0.8 {
		t.Fatalf("expected 0.8 confidence, got %v", cls.Confidence)
	}
}

func TestClassifyOfflineMathBeatsPhysics(t *testing.T) {
	// Content carrying both vocabularies resolves to math: the math check
	// runs first and there is no cross-category scoring.
	c := NewClassifier(logger.Nop(), nil, testVocab(), 0)
	cls := c.Classify(context.Background(), "用函数描述力的变化")
	if cls.Subject != domain.SubjectMath {
		t.Fatalf("expected math to win, got %s", cls.Subject)
	}
}

func TestClassifyOfflinePhysicsKeyword(t *testing.T) {
	c := NewClassifier(logger.Nop(), nil, testVocab(), 0)
	cls := c.Classify(context.Background(), "物体受到的力与能量守恒")
	if cls.Subject != domain.SubjectPhysics {
		t.Fatalf("expected physics, got %s", cls.Subject)
	}
}

func TestClassifyOfflineGeneralDefault(t *testing.T) {
	c := NewClassifier(logger.Nop(), nil, testVocab(), 0)
	cls := c.Classify(context.Background(), "唐朝的建立与发展")
	if cls.Subject != domain.SubjectGeneral {
		t.Fatalf("expected general, got %s", cls.Subject)
	}
	if cls.Confidence != 0.6 {
		t.Fatalf("expected 0.6 confidence, got %v", cls.Confidence)
	}
	if cls.VisualizationType == "" || cls.VisualizationDescription == "" {
		t.Fatalf("fallback classification must be fully populated")
	}
}

func TestClassifyOfflineDeterministic(t *testing.T) {
	c := NewClassifier(logger.Nop(), nil, testVocab(), 0)
	first := c.Classify(context.Background(), "极限的定义")
	for i := 0; i < 5; i++ {
		if got := c.Classify(context.Background(), "极限的定义"); got.Subject != first.Subject || got.Confidence != first.Confidence {
			t.Fatalf("classification not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestClassifyRemoteResponse(t *testing.T) {
	stub := &stubTextClient{response: "分析结果如下：\n{\"subject\": \"chemistry\", \"subject_confidence\": 0.9, \"visualization_type\": \"分子图\", \"visualization_description\": \"画出水分子\", \"key_elements\": [\"H\", \"O\"]}\n以上。"}
	c := NewClassifier(logger.Nop(), stub, testVocab(), 0)
	cls := c.Classify(context.Background(), "anything")
	if cls.Subject != domain.SubjectChemistry {
		t.Fatalf("expected chemistry, got %s", cls.Subject)
	}
	if cls.Confidence != 0.9 {
		t.Fatalf("expected 0.9, got %v", cls.Confidence)
	}
	if len(cls.KeyElements) != 2 {
		t.Fatalf("expected 2 key elements, got %v", cls.KeyElements)
	}
}

func TestClassifyRemoteStringConfidence(t *testing.T) {
	stub := &stubTextClient{response: `{"subject": "biology", "subject_confidence": "0.75"}`}
	c := NewClassifier(logger.Nop(), stub, testVocab(), 0)
	cls := c.Classify(context.Background(), "anything")
	if cls.Subject != domain.SubjectBiology {
		t.Fatalf("expected biology, got %s", cls.Subject)
	}
	if cls.Confidence != 0.75 {
		t.Fatalf("expected 0.75, got %v", cls.Confidence)
	}
	if cls.VisualizationType != "文本展示" {
		t.Fatalf("expected default visualization type, got %q", cls.VisualizationType)
	}
}

func TestClassifyRemoteUnknownSubjectBecomesGeneral(t *testing.T) {
	stub := &stubTextClient{response: `{"subject": "astronomy", "subject_confidence": 0.9}`}
	c := NewClassifier(logger.Nop(), stub, testVocab(), 0)
	if cls := c.Classify(context.Background(), "anything"); cls.Subject != domain.SubjectGeneral {
		t.Fatalf("unknown subject should map to general, got %s", cls.Subject)
	}
}

func TestClassifyRemoteErrorFallsBack(t *testing.T) {
	stub := &stubTextClient{err: errors.New("boom")}
	c := NewClassifier(logger.Nop(), stub, testVocab(), 0)
	cls := c.Classify(context.Background(), "导数")
	if cls.Subject != domain.SubjectMath {
		t.Fatalf("expected heuristic math fallback, got %s", cls.Subject)
	}
}

func TestClassifyRemoteGarbageFallsBack(t *testing.T) {
	stub := &stubTextClient{response: "I cannot help with that."}
	c := NewClassifier(logger.Nop(), stub, testVocab(), 0)
	cls := c.Classify(context.Background(), "光的折射")
	if cls.Subject != domain.SubjectPhysics {
		t.Fatalf("expected heuristic physics fallback, got %s", cls.Subject)
	}
}

func TestClassifyRemoteMissingSubjectFallsBack(t *testing.T) {
	stub := &stubTextClient{response: `{"visualization_type": "图"}`}
	c := NewClassifier(logger.Nop(), stub, testVocab(), 0)
	if cls := c.Classify(context.Background(), "无关内容"); cls.Subject != domain.SubjectGeneral {
		t.Fatalf("expected general fallback, got %s", cls.Subject)
	}
}

func TestParseConfidenceClamping(t *testing.T) {
	if got := parseConfidence(1.5); got != 1 {
		t.Fatalf("expected clamp to 1, got %v", got)
	}
	if got := parseConfidence(-0.2); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
	if got := parseConfidence(nil); got != 0.5 {
		t.Fatalf("expected 0.5 default, got %v", got)
	}
	if got := parseConfidence("not a number"); got != 0.5 {
		t.Fatalf("expected 0.5 default for garbage string, got %v", got)
	}
}
