package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/tree"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Print the demo scene's info tree",
		Long: `Build the demo scene, run the info-rebuild pass over it and print
the resulting widget tree: one line per widget with its identity and
bounds, indented by depth.`,
		Usage: "ripple inspect",
		Run:   runInspect,
	})
}

var (
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	boundsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func runInspect(args []string) error {
	scene := demoScene()
	cx := tree.NewContext(sceneFlags(), nil)
	scene.Init(cx)
	scene.Update(cx)

	ib := frame.NewInfoBuilder()
	scene.RebuildInfo(cx, ib)
	for _, n := range ib.Build() {
		printInfo(n, 0)
	}
	return nil
}

func printInfo(n frame.InfoNode, depth int) {
	indent := strings.Repeat("  ", depth)
	branch := ""
	if depth > 0 {
		branch = branchStyle.Render("└ ")
	}
	bounds := fmt.Sprintf("(%g,%g %gx%g)",
		n.Bounds.Left, n.Bounds.Top, n.Bounds.Width(), n.Bounds.Height())
	fmt.Printf("%s%s%s %s\n",
		indent, branch,
		idStyle.Render(fmt.Sprintf("widget#%d", n.Widget)),
		boundsStyle.Render(bounds))
	for _, c := range n.Children {
		printInfo(c, depth+1)
	}
}
