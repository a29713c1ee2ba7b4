package profile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/validation"
)

type ThemeCmd struct {
	Show  ThemeShowCmd  `cmd:"" help:"Show the current theme." default:"1"`
	Set   ThemeSetCmd   `cmd:"" help:"Update the theme."`
	Reset ThemeResetCmd `cmd:"" help:"Restore the default colors."`
}

func swatch(color string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}

func printTheme(p models.Profile) {
	fmt.Println("Theme:")
	fmt.Printf("  Mode:      %s\n", p.ThemeMode)
	fmt.Printf("  Primary:   %s %s\n", swatch(p.PrimaryColor), p.PrimaryColor)
	fmt.Printf("  Secondary: %s %s\n", swatch(p.SecondaryColor), p.SecondaryColor)
	fmt.Printf("  Accent:    %s %s\n", swatch(p.AccentColor), p.AccentColor)
}

type ThemeShowCmd struct{}

func (c *ThemeShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(ctx.UserID())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	printTheme(p)
	return nil
}

type ThemeSetCmd struct {
	Mode      string `help:"Theme mode: light, dark or night."`
	Primary   string `help:"Primary color (#rrggbb)."`
	Secondary string `help:"Secondary color (#rrggbb)."`
	Accent    string `help:"Accent color (#rrggbb)."`
}

func (c *ThemeSetCmd) Run(ctx *cli.Context) error {
	in := validation.ThemeInput{
		Mode:           c.Mode,
		PrimaryColor:   c.Primary,
		SecondaryColor: c.Secondary,
		AccentColor:    c.Accent,
	}
	if in == (validation.ThemeInput{}) {
		return fmt.Errorf("nothing to update, pass at least one of --mode, --primary, --secondary, --accent")
	}

	p, err := ctx.Store.GetProfile(ctx.UserID())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	ignored, err := in.Apply(&p)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveProfile(p); err != nil {
		return err
	}

	for _, field := range ignored {
		fmt.Printf("Warning: ignored invalid %s\n", strings.ReplaceAll(field, "_", " "))
	}
	printTheme(p)
	return nil
}

type ThemeResetCmd struct{}

func (c *ThemeResetCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(ctx.UserID())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	p.ResetColors()
	if err := ctx.Store.SaveProfile(p); err != nil {
		return err
	}
	fmt.Println("✓ Colors reset to defaults")
	printTheme(p)
	return nil
}

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	achievements, err := ctx.Store.GetAchievements(ctx.UserID())
	if err != nil {
		return fmt.Errorf("failed to get achievements: %w", err)
	}
	if len(achievements) == 0 {
		fmt.Println("No achievements yet. Keep your streaks going!")
		return nil
	}

	fmt.Printf("Achievements (%d):\n", len(achievements))
	for _, a := range achievements {
		fmt.Printf("  %s %s - %s (%s)\n", a.Badge, a.Title, a.Description, a.EarnedAt.Format("2006-01-02"))
	}
	return nil
}

type NotificationCmd struct {
	List NotificationListCmd `cmd:"" help:"List notifications." default:"1"`
	Read NotificationReadCmd `cmd:"" help:"Mark a notification as read."`
}

type NotificationListCmd struct {
	Unread  bool `help:"Only show unread notifications."`
	ShowIDs bool `help:"Show notification IDs." name:"show-ids"`
}

func (c *NotificationListCmd) Run(ctx *cli.Context) error {
	notifications, err := ctx.Store.GetNotifications(ctx.UserID(), c.Unread)
	if err != nil {
		return fmt.Errorf("failed to get notifications: %w", err)
	}
	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}

	for _, n := range notifications {
		mark := "•"
		if n.Read {
			mark = " "
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", n.ID)
		}
		fmt.Printf("%s %s%s\n", mark, n.Title, idStr)
		fmt.Printf("    %s\n", n.Message)
	}
	return nil
}

type NotificationReadCmd struct {
	ID string `arg:"" help:"Notification ID."`
}

func (c *NotificationReadCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.MarkNotificationRead(c.ID); err != nil {
		return fmt.Errorf("notification %s: %w", c.ID, err)
	}
	fmt.Println("✓ Marked as read")
	return nil
}
