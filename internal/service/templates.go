package service

import (
	"strings"

	"github.com/GoldenFighter/contestboard/internal/models"
)

// contestTemplate fixes the judging setup for one contest type: the analysis
// mode the judge runs in, the structured fields we expect back, and the
// natural-language rating questions. The literal word "contest" in each
// question is replaced by the board's theme at request time.
type contestTemplate struct {
	Mode           string
	ExpectedFields []string
	Questions      []string
}

var contestTemplates = map[string]contestTemplate{
	models.ContestTypePhotography: {
		Mode:           "image_analysis",
		ExpectedFields: []string{"objects", "quality", "composition", "tags", "moods", "summary", "reasoning", "risks", "recommendations"},
		Questions: []string{
			"Rate the technical execution of this contest photo 1-10",
			"Rate the composition of this contest photo 1-10",
			"Rate how well this photo fits the contest theme 1-10",
			"Rate the creativity shown in this contest photo 1-10",
		},
	},
	models.ContestTypeArt: {
		Mode:           "artistic_analysis",
		ExpectedFields: []string{"objects", "quality", "tags", "moods", "summary", "reasoning", "recommendations"},
		Questions: []string{
			"Rate the artistic merit of this contest entry 1-10",
			"Rate the originality of this contest entry 1-10",
			"Rate how strongly this entry evokes the contest theme 1-10",
		},
	},
	models.ContestTypeDesign: {
		Mode:           "design_analysis",
		ExpectedFields: []string{"objects", "quality", "composition", "tags", "summary", "reasoning", "recommendations"},
		Questions: []string{
			"Rate the visual hierarchy of this contest design 1-10",
			"Rate the craft and polish of this contest design 1-10",
			"Rate how well this design answers the contest brief 1-10",
		},
	},
	models.ContestTypeDocument: {
		Mode:           "document_analysis",
		ExpectedFields: []string{"quality", "tags", "summary", "reasoning", "risks", "recommendations"},
		Questions: []string{
			"Rate the clarity of this contest document 1-10",
			"Rate the structure of this contest document 1-10",
			"Rate how completely this document addresses the contest prompt 1-10",
		},
	},
	models.ContestTypeGeneral: {
		Mode:           "general_analysis",
		ExpectedFields: []string{"objects", "quality", "composition", "tags", "moods", "summary", "reasoning", "risks", "recommendations"},
		Questions: []string{
			"Rate the overall quality of this contest entry 1-10",
			"Rate the creativity of this contest entry 1-10",
			"Rate how relevant this entry is to the contest theme 1-10",
		},
	},
}

// TemplateFor resolves the judging template for a contest type, substituting
// the theme into every question. Unknown types fall back to general.
func TemplateFor(contestType, theme string) contestTemplate {
	template, ok := contestTemplates[strings.ToLower(strings.TrimSpace(contestType))]
	if !ok {
		template = contestTemplates[models.ContestTypeGeneral]
	}

	if theme == "" {
		return template
	}

	themed := contestTemplate{
		Mode:           template.Mode,
		ExpectedFields: template.ExpectedFields,
		Questions:      make([]string, len(template.Questions)),
	}
	for i, question := range template.Questions {
		themed.Questions[i] = strings.ReplaceAll(question, "contest", theme)
	}
	return themed
}
