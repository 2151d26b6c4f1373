package publisher

import (
	"fmt"
	"strings"

	"github.com/kekohu426/meishi/pkg/asset"
	"github.com/kekohu426/meishi/pkg/domain"
)

// buildMarkdown はレシピ文書を閲覧用 Markdown に組み立てます。
func buildMarkdown(doc *domain.RecipeDocument, report *asset.ResolutionReport) string {
	var sb strings.Builder

	title := doc.TitleZh
	if doc.TitleEn != "" {
		title = fmt.Sprintf("%s (%s)", doc.TitleZh, doc.TitleEn)
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if report != nil && report.CoverImage != "" {
		sb.WriteString(fmt.Sprintf("![cover](%s)\n\n", report.CoverImage))
	}

	sb.WriteString(fmt.Sprintf("- 难度: %s\n", doc.Summary.Difficulty))
	sb.WriteString(fmt.Sprintf("- 总时长: %.0f 分钟 (动手 %.0f 分钟)\n", doc.Summary.TimeTotalMin, doc.Summary.TimeActiveMin))
	sb.WriteString(fmt.Sprintf("- 份量: %.0f 人份\n\n", doc.Summary.Servings))

	sb.WriteString(doc.Story.Content)
	sb.WriteString("\n\n")
	if len(doc.Story.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("标签: %s\n\n", strings.Join(doc.Story.Tags, " / ")))
	}

	sb.WriteString("## 食材\n\n")
	for _, section := range doc.Ingredients {
		sb.WriteString(fmt.Sprintf("### %s\n\n", section.Section))
		for _, item := range section.Items {
			line := fmt.Sprintf("- %s: %s %s", item.Name, formatAmount(item.Amount), item.Unit)
			if item.Notes != "" {
				line += fmt.Sprintf("（%s）", item.Notes)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## 步骤\n\n")
	for i, step := range doc.Steps {
		sb.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, step.Title))
		sb.WriteString(step.Action + "\n\n")
		if step.TimerSec > 0 {
			sb.WriteString(fmt.Sprintf("计时: %.0f 秒\n\n", step.TimerSec))
		}
		if step.FailPoint != "" {
			sb.WriteString(fmt.Sprintf("注意: %s\n\n", step.FailPoint))
		}
	}

	if shots := doc.ResolvedShots(); len(shots) > 0 {
		sb.WriteString("## 成品图\n\n")
		for _, shot := range shots {
			sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", shot.Key, shot.ImageURL))
		}
	}

	return sb.String()
}

// formatAmount は 0.5 → "0.5"、2 → "2" のように余分な桁を出さずに整形します。
func formatAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%.0f", amount)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", amount), "0"), ".")
}
