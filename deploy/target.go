package deploy

import (
	"fmt"
	"strconv"
	"strings"
)

// Target is an upload destination. The numeric values are the menu choices.
type Target int

const (
	TargetNetlify Target = iota + 1
	TargetGitHub
	TargetVercel
	TargetArchive
	TargetExit
)

var targetNames = map[Target]string{
	TargetNetlify: "netlify",
	TargetGitHub:  "github",
	TargetVercel:  "vercel",
	TargetArchive: "archive",
	TargetExit:    "exit",
}

var targetLabels = map[Target]string{
	TargetNetlify: "Netlify (automatic) - recommended",
	TargetGitHub:  "GitHub Pages (token required)",
	TargetVercel:  "Vercel (token required)",
	TargetArchive: "Create ZIP for manual upload",
	TargetExit:    "Exit",
}

var targetAliases = map[string]Target{
	"pages":  TargetGitHub,
	"gh":     TargetGitHub,
	"zip":    TargetArchive,
	"manual": TargetArchive,
	"quit":   TargetExit,
	"q":      TargetExit,
}

// Menu lists the targets in menu order.
func Menu() []Target {
	return []Target{TargetNetlify, TargetGitHub, TargetVercel, TargetArchive, TargetExit}
}

func (t Target) String() string {
	if n, ok := targetNames[t]; ok {
		return n
	}
	return "target(" + strconv.Itoa(int(t)) + ")"
}

// Label is the human text shown in the interactive menu.
func (t Target) Label() string {
	return targetLabels[t]
}

// ParseTarget accepts a menu number ("1".."5") or a target name.
func ParseTarget(s string) (Target, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		t := Target(n)
		if _, ok := targetNames[t]; ok {
			return t, nil
		}
		return 0, fmt.Errorf("%w: %q (choose 1-%d)", ErrUnknownTarget, s, len(targetNames))
	}
	for t, name := range targetNames {
		if name == s {
			return t, nil
		}
	}
	if t, ok := targetAliases[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}
