package api

import (
	"context"
	"io"
	"net/http"

	"github.com/dtroode/creatorhub/internal/apiclient"
	"github.com/dtroode/creatorhub/internal/model"
)

const (
	profilePath  = "/users/me"
	settingsPath = "/users/me/settings"
	socialPath   = "/users/me/social"
	avatarField  = "avatar"
)

// Profile manages the signed-in account.
type Profile struct {
	doer Doer
}

func NewProfile(doer Doer) *Profile {
	return &Profile{doer: doer}
}

func (p *Profile) Get(ctx context.Context) (model.UserProfile, error) {
	resp, err := get(ctx, p.doer, profilePath)
	if err != nil {
		return model.UserProfile{}, err
	}
	return decode[model.UserProfile](resp)
}

func (p *Profile) Update(ctx context.Context, in model.ProfileUpdate) (model.UserProfile, error) {
	return p.put(ctx, profilePath, in)
}

func (p *Profile) UpdateSettings(ctx context.Context, in model.SettingsUpdate) (model.UserProfile, error) {
	return p.put(ctx, settingsPath, in)
}

func (p *Profile) UpdateSocial(ctx context.Context, in model.SocialUpdate) (model.UserProfile, error) {
	return p.put(ctx, socialPath, in)
}

// UploadAvatar sends r as the multipart "avatar" field of PUT /users/me.
func (p *Profile) UploadAvatar(ctx context.Context, filename string, r io.Reader) (model.UserProfile, error) {
	form := apiclient.NewForm().AddFile(avatarField, filename, r)
	return p.put(ctx, profilePath, form)
}

func (p *Profile) put(ctx context.Context, path string, body any) (model.UserProfile, error) {
	resp, err := send(ctx, p.doer, http.MethodPut, path, body)
	if err != nil {
		return model.UserProfile{}, err
	}
	return decode[model.UserProfile](resp)
}
