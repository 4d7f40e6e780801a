package model

import "time"

// Intensity 痛点强度标签，仅作提示，未知取值按默认样式展示
type Intensity string

const (
	IntensityCritical      Intensity = "Critical"
	IntensitySystemic      Intensity = "Systemic"
	IntensityHighMargin    Intensity = "High Margin"
	IntensityLowEfficiency Intensity = "Low Efficiency"
	IntensityRegulatory    Intensity = "Regulatory"
)

var intensityStyles = map[Intensity]string{
	IntensityCritical:      "critical",
	IntensitySystemic:      "systemic",
	IntensityHighMargin:    "high-margin",
	IntensityLowEfficiency: "low-efficiency",
	IntensityRegulatory:    "regulatory",
}

// Known 是否为已知强度
func (i Intensity) Known() bool {
	_, ok := intensityStyles[i]
	return ok
}

// Style 返回展示样式名，未知强度返回 "default"
func (i Intensity) Style() string {
	if s, ok := intensityStyles[i]; ok {
		return s
	}
	return "default"
}

// SWOT 四象限分析
type SWOT struct {
	Strengths     []string `json:"strengths" yaml:"strengths"`
	Weaknesses    []string `json:"weaknesses" yaml:"weaknesses"`
	Opportunities []string `json:"opportunities" yaml:"opportunities"`
	Threats       []string `json:"threats" yaml:"threats"`
}

// Clone 深拷贝
func (s *SWOT) Clone() *SWOT {
	if s == nil {
		return nil
	}
	return &SWOT{
		Strengths:     cloneStrings(s.Strengths),
		Weaknesses:    cloneStrings(s.Weaknesses),
		Opportunities: cloneStrings(s.Opportunities),
		Threats:       cloneStrings(s.Threats),
	}
}

// PainPoint 市场痛点卡片
type PainPoint struct {
	ID           string     `json:"id" yaml:"id"`
	Industry     string     `json:"industry" yaml:"industry"`
	Title        string     `json:"title" yaml:"title"`
	Intensity    Intensity  `json:"intensity" yaml:"intensity"`
	Description  string     `json:"description" yaml:"description"`
	Reasoning    string     `json:"reasoning" yaml:"reasoning"`
	Statistic    string     `json:"statistic" yaml:"statistic"`
	SolutionIdea string     `json:"solution_idea" yaml:"solution_idea"`
	SWOT         *SWOT      `json:"swot,omitempty" yaml:"swot,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Clone 返回不与原记录共享任何可变状态的副本
func (p PainPoint) Clone() PainPoint {
	c := p
	c.SWOT = p.SWOT.Clone()
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		c.CreatedAt = &t
	}
	return c
}

// ClonePoints 拷贝一组记录
func ClonePoints(points []PainPoint) []PainPoint {
	if points == nil {
		return nil
	}
	out := make([]PainPoint, len(points))
	for i, p := range points {
		out[i] = p.Clone()
	}
	return out
}

// Source 标识本次结果由哪一级数据源产生
type Source string

const (
	SourceRemoteStore  Source = "Supabase"
	SourceGenerativeAI Source = "Gemini AI"
	SourceStaticSeed   Source = "Local Engine"
)

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
