// Package generator provides questionnaire generation backends: an
// OpenAI-backed client and a deterministic template fallback.
package generator

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"

	"survey/internal/domain/entity"
	"survey/internal/domain/service"
)

type questionTemplate struct {
	qType    string
	text     string
	options  []string
	required bool
}

// The fixed template set the fallback draws from, in order.
var fallbackTemplates = []questionTemplate{
	{
		qType:    entity.QuestionSingleChoice,
		text:     "您对当前体验的整体满意度是？",
		options:  []string{"非常满意", "满意", "一般", "不满意", "非常不满意"},
		required: true,
	},
	{
		qType:    entity.QuestionRating,
		text:     "您愿意推荐给朋友的可能性有多大？",
		options:  []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		required: true,
	},
	{
		qType:    entity.QuestionMultipleChoice,
		text:     "您最看重的功能点是？",
		options:  []string{"易用性", "性能", "外观设计", "价格", "客服支持"},
		required: false,
	},
	{
		qType:    entity.QuestionShortText,
		text:     "您希望我们优先改进的地方是？",
		required: false,
	},
	{
		qType:    entity.QuestionSingleChoice,
		text:     "您使用该产品的频率是？",
		options:  []string{"每天", "每周 3-4 次", "每周 1-2 次", "偶尔", "首次使用"},
		required: false,
	},
	{
		qType:    entity.QuestionShortText,
		text:     "还有哪些建议或需求想告诉我们？",
		required: false,
	},
}

const fallbackFillerText = "请描述您最真实的感受。"

// templateGenerator produces questionnaires from a fixed template set.
// It never fails, which makes it a safe last resort.
type templateGenerator struct{}

// NewTemplateGenerator is the constructor for templateGenerator.
func NewTemplateGenerator() service.QuestionnaireGenerator {
	return &templateGenerator{}
}

// Generate builds a questionnaire from the template set, padding with a
// short-text filler question up to the requested count.
func (g *templateGenerator) Generate(_ context.Context, spec service.GenerateSpec) (*entity.Questionnaire, error) {
	questions := make([]entity.Question, 0, spec.QuestionCount)
	for idx := 0; idx < spec.QuestionCount && idx < len(fallbackTemplates); idx++ {
		tpl := fallbackTemplates[idx]
		questions = append(questions, entity.Question{
			ID:       newQuestionID(),
			Type:     tpl.qType,
			Text:     tpl.text,
			Required: tpl.required,
			Options:  tpl.options,
		})
	}

	for len(questions) < spec.QuestionCount {
		questions = append(questions, entity.Question{
			ID:   newQuestionID(),
			Type: entity.QuestionShortText,
			Text: fallbackFillerText,
		})
	}

	return &entity.Questionnaire{
		Title:     spec.Goal + "问卷",
		Intro:     "感谢参与本次调研，问卷大约需要 3-5 分钟完成。",
		Questions: questions,
	}, nil
}

// newQuestionID returns a short random id, 8 hex characters.
func newQuestionID() string {
	id := uuid.New()

	return hex.EncodeToString(id[:4])
}
