package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtroode/creatorhub/internal/model"
)

func (a *app) profileShow(ctx context.Context, args []string) error {
	if err := parse(a.flags("profile show"), args); err != nil {
		return err
	}
	p, err := a.api.Profile.Get(ctx)
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}

func (a *app) profileUpdate(ctx context.Context, args []string) error {
	fs := a.flags("profile update")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	bio := fs.String("bio", "", "biography")
	job := fs.String("job", "", "job title")
	phone := fs.String("phone", "", "phone number")
	country := fs.String("country", "", "country")
	city := fs.String("city", "", "city")
	postalCode := fs.String("postal-code", "", "postal code")
	birthday := fs.String("birthday", "", "birthday, YYYY-MM-DD")
	if err := parse(fs, args); err != nil {
		return err
	}

	set := visited(fs)
	if len(set) == 0 {
		fmt.Fprintln(fs.Output(), "nothing to update")
		fs.PrintDefaults()
		return errUsage
	}

	p, err := a.api.Profile.Update(ctx, model.ProfileUpdate{
		FirstName:  optionalString(set, "first-name", *firstName),
		LastName:   optionalString(set, "last-name", *lastName),
		Bio:        optionalString(set, "bio", *bio),
		Job:        optionalString(set, "job", *job),
		Phone:      optionalString(set, "phone", *phone),
		Country:    optionalString(set, "country", *country),
		City:       optionalString(set, "city", *city),
		PostalCode: optionalString(set, "postal-code", *postalCode),
		Birthday:   optionalString(set, "birthday", *birthday),
	})
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}

func (a *app) profileSettings(ctx context.Context, args []string) error {
	fs := a.flags("profile settings")
	email := fs.Bool("email-notifications", false, "email notifications")
	push := fs.Bool("push-notifications", false, "push notifications")
	marketing := fs.Bool("marketing-emails", false, "marketing emails")
	security := fs.Bool("security-alerts", false, "security alerts")
	if err := parse(fs, args); err != nil {
		return err
	}

	set := visited(fs)
	if len(set) == 0 {
		fmt.Fprintln(fs.Output(), "nothing to update")
		fs.PrintDefaults()
		return errUsage
	}

	p, err := a.api.Profile.UpdateSettings(ctx, model.SettingsUpdate{
		EmailNotifications: optionalBool(set, "email-notifications", *email),
		PushNotifications:  optionalBool(set, "push-notifications", *push),
		MarketingEmails:    optionalBool(set, "marketing-emails", *marketing),
		SecurityAlerts:     optionalBool(set, "security-alerts", *security),
	})
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}

func (a *app) profileSocial(ctx context.Context, args []string) error {
	fs := a.flags("profile social")
	facebook := fs.String("facebook", "", "facebook handle")
	twitter := fs.String("twitter", "", "twitter handle")
	instagram := fs.String("instagram", "", "instagram handle")
	linkedin := fs.String("linkedin", "", "linkedin handle")
	if err := parse(fs, args); err != nil {
		return err
	}

	set := visited(fs)
	if len(set) == 0 {
		fmt.Fprintln(fs.Output(), "nothing to update")
		fs.PrintDefaults()
		return errUsage
	}

	p, err := a.api.Profile.UpdateSocial(ctx, model.SocialUpdate{
		Facebook:  optionalString(set, "facebook", *facebook),
		Twitter:   optionalString(set, "twitter", *twitter),
		Instagram: optionalString(set, "instagram", *instagram),
		LinkedIn:  optionalString(set, "linkedin", *linkedin),
	})
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}

func (a *app) profileAvatar(ctx context.Context, args []string) error {
	fs := a.flags("profile avatar")
	path := fs.String("file", "", "image file to upload")
	if err := parse(fs, args, "file"); err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("failed to open avatar: %w", err)
	}
	defer f.Close()

	p, err := a.api.Profile.UploadAvatar(ctx, filepath.Base(*path), f)
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}
