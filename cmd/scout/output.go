package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
)

var noColor = os.Getenv("NO_COLOR") != ""

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+msg))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+msg))
}

func printStep(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorCyan, "→ "+msg))
}

var styleColors = map[string]string{
	"critical":       colorRed,
	"systemic":       colorMagenta,
	"high-margin":    colorGreen,
	"low-efficiency": colorYellow,
	"regulatory":     colorBlue,
}

// intensityColor 与看板页面的配色保持一致
func intensityColor(i model.Intensity) string {
	if c, ok := styleColors[i.Style()]; ok {
		return c
	}
	return colorDim
}

// printPoints 输出一组痛点，favs 中的 id 以 ★ 标记
func printPoints(w io.Writer, points []model.PainPoint, favs func(id string) bool) {
	for i, p := range points {
		star := " "
		if favs != nil && favs(p.ID) {
			star = colorize(colorYellow, "★")
		}
		fmt.Fprintf(w, "%s %d. %s  %s\n", star, i+1,
			colorize(colorBold, p.Title),
			colorize(intensityColor(p.Intensity), "["+string(p.Intensity)+"]"))
		fmt.Fprintf(w, "     %s · id %s\n", p.Industry, p.ID)
		fmt.Fprintf(w, "     %s\n", p.Description)
		if p.Statistic != "" {
			fmt.Fprintf(w, "     %s\n", colorize(colorDim, p.Statistic))
		}
		if p.SolutionIdea != "" {
			fmt.Fprintf(w, "     idea: %s\n", p.SolutionIdea)
		}
		if p.SWOT != nil {
			fmt.Fprintf(w, "     S: %s | W: %s | O: %s | T: %s\n",
				strings.Join(p.SWOT.Strengths, ", "),
				strings.Join(p.SWOT.Weaknesses, ", "),
				strings.Join(p.SWOT.Opportunities, ", "),
				strings.Join(p.SWOT.Threats, ", "))
		}
	}
}
