package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/onboarding"
	"github.com/julianstephens/taskflow/internal/validation"
)

// OnboardCmd runs the first-run wizard. With --name set it runs
// non-interactively from flags.
type OnboardCmd struct {
	Name       string   `help:"Your name."`
	Preference string   `help:"When you are most productive: morning, evening or anytime." default:"anytime" enum:"morning,evening,anytime"`
	Habit      []string `help:"Starter habit to create (repeatable)." name:"habit"`
	Skip       bool     `help:"Skip onboarding without creating anything."`
	Force      bool     `help:"Run again even if onboarding is already complete."`
}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile(ctx.UserID())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.OnboardingCompleted && !c.Force {
		fmt.Printf("Onboarding already completed for %s. Use --force to run it again.\n", profile.CustomName)
		return nil
	}

	if c.Skip {
		if _, err := onboarding.Skip(ctx.Store, profile); err != nil {
			return err
		}
		fmt.Println("Onboarding skipped.")
		return nil
	}

	in := validation.OnboardingInput{
		Name:          c.Name,
		Preference:    c.Preference,
		StarterHabits: c.Habit,
	}
	if strings.TrimSpace(in.Name) == "" {
		if err := runWizard(&in); err != nil {
			return err
		}
	}

	result, err := onboarding.Complete(ctx.Store, profile, in, ctx.Now())
	if err != nil {
		return err
	}

	fmt.Println(onboarding.WelcomeTitle)
	fmt.Printf("  Name: %s (%s)\n", result.Profile.CustomName, result.Profile.ProductivityPreference.Label())
	if len(result.Habits) > 0 {
		fmt.Printf("  Created %d starter habit(s), reminders at %s:\n", len(result.Habits), result.Profile.RecommendedTime())
		for _, h := range result.Habits {
			fmt.Printf("    ○ %s\n", h.Title)
		}
	}
	return nil
}

func runWizard(in *validation.OnboardingInput) error {
	prefs := []models.ProductivityPreference{models.PreferenceMorning, models.PreferenceEvening, models.PreferenceAnytime}
	options := make([]huh.Option[string], 0, len(prefs))
	for _, p := range prefs {
		options = append(options, huh.NewOption(p.Label(), string(p)))
	}
	var habits string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Value(&in.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("When are you most productive?").
				Options(options...).
				Value(&in.Preference),
			huh.NewText().
				Title("Starter habits (one per line, optional)").
				Value(&habits),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("onboarding aborted: %w", err)
	}

	for _, line := range strings.Split(habits, "\n") {
		if strings.TrimSpace(line) != "" {
			in.StarterHabits = append(in.StarterHabits, line)
		}
	}
	return nil
}
