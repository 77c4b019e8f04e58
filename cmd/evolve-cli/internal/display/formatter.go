package display

import (
	"fmt"
	"strings"

	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/problems"
)

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
)

func FormatProblemList() string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s%sBuilt-in Search Problems%s\n", ColorBold, ColorBlue, ColorReset))
	output.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, name := range problems.ListAll() {
		info, _ := problems.Get(name)
		difficulty := getDifficultyColor(info.Difficulty)

		output.WriteString(fmt.Sprintf("%s%s%s (%s)%s\n", ColorBold, ColorGreen, info.Name, name, ColorReset))
		output.WriteString(fmt.Sprintf("  %s\n", info.Description))
		output.WriteString(fmt.Sprintf("  %sDifficulty:%s %s%s%s | %sConvergence:%s %s\n",
			ColorCyan, ColorReset, difficulty, info.Difficulty, ColorReset,
			ColorCyan, ColorReset, info.Convergence))
		output.WriteString("\n")
	}

	output.WriteString(fmt.Sprintf("%sTip:%s Use 'evolve-cli describe <problem>' for detailed information\n",
		ColorPurple, ColorReset))

	return output.String()
}

func FormatProblemDetails(name string, info problems.Info) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s%s%s%s\n", ColorBold, ColorBlue, info.Name, ColorReset))
	output.WriteString(strings.Repeat("=", len(info.Name)+10) + "\n\n")

	output.WriteString(fmt.Sprintf("%sDescription:%s\n%s\n\n", ColorBold, ColorReset, info.Description))

	output.WriteString(fmt.Sprintf("%sSearch Space:%s\n", ColorBold, ColorReset))
	output.WriteString(fmt.Sprintf("  • %sGenes:%s %s\n", ColorCyan, ColorReset, info.GeneSpace))
	output.WriteString(fmt.Sprintf("  • %sFitness:%s %s\n", ColorCyan, ColorReset, info.Fitness))

	difficulty := getDifficultyColor(info.Difficulty)
	output.WriteString(fmt.Sprintf("  • %sDifficulty:%s %s%s%s\n", ColorCyan, ColorReset, difficulty, info.Difficulty, ColorReset))
	output.WriteString(fmt.Sprintf("  • %sConvergence:%s %s\n", ColorCyan, ColorReset, info.Convergence))

	output.WriteString(fmt.Sprintf("\n%sBest For:%s\n", ColorBold, ColorReset))
	for _, useCase := range info.BestFor {
		output.WriteString(fmt.Sprintf("  • %s\n", useCase))
	}

	output.WriteString(fmt.Sprintf("\n%sTry it:%s\n", ColorBold, ColorReset))
	output.WriteString(fmt.Sprintf("  %s\n", info.Example))

	return output.String()
}

func getDifficultyColor(difficulty string) string {
	switch strings.ToLower(difficulty) {
	case "low":
		return ColorGreen
	case "medium":
		return ColorYellow
	case "high":
		return ColorRed
	default:
		return ColorReset
	}
}
