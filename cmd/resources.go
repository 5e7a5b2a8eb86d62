package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/dtroode/creatorhub/internal/listing"
	"github.com/dtroode/creatorhub/internal/model"
)

type listFlags struct {
	query   *string
	page    *int
	perPage *int
}

func (a *app) listFlags(fs *flag.FlagSet) listFlags {
	return listFlags{
		query:   fs.String("q", "", "search text"),
		page:    fs.Int("page", 1, "page number"),
		perPage: fs.Int("per-page", a.cfg.Dashboard.PageSize, "items per page"),
	}
}

func paginate[T any](lf listFlags, items []T, q listing.Query[T]) listing.Page[T] {
	return listing.Paginate(q.Apply(items, *lf.query), *lf.perPage, *lf.page)
}

var userSorts = map[string]func(a, b model.User) int{
	"name":        func(a, b model.User) int { return strings.Compare(strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName())) },
	"performance": func(a, b model.User) int { return cmp.Compare(b.Performance, a.Performance) },
	"created":     func(a, b model.User) int { return b.CreatedAt.Compare(a.CreatedAt) },
}

var fanSorts = map[string]func(a, b model.Fan) int{
	"name":     func(a, b model.Fan) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"spent":    func(a, b model.Fan) int { return cmp.Compare(b.TotalSpent, a.TotalSpent) },
	"activity": func(a, b model.Fan) int { return b.LastActivity.Compare(a.LastActivity) },
}

func sortBy[T any](fs *flag.FlagSet, sorts map[string]func(a, b T) int, name string) (func(a, b T) int, error) {
	if name == "" {
		return nil, nil
	}
	compare, ok := sorts[name]
	if !ok {
		fmt.Fprintf(fs.Output(), "unknown sort %q\n", name)
		return nil, errUsage
	}
	return compare, nil
}

func (a *app) usersList(ctx context.Context, args []string) error {
	fs := a.flags("users list")
	lf := a.listFlags(fs)
	role := fs.String("role", "", "only users with this role")
	sort := fs.String("sort", "", "order by name, performance or created")
	if err := parse(fs, args); err != nil {
		return err
	}
	compare, err := sortBy(fs, userSorts, *sort)
	if err != nil {
		return err
	}

	users, err := a.api.Users.List(ctx)
	if err != nil {
		return err
	}

	q := listing.Query[model.User]{
		Fields: []listing.Field[model.User]{
			func(u model.User) any { return u.Name },
			func(u model.User) any { return u.Email },
			func(u model.User) any { return u.Role },
			func(u model.User) any { return u.Performance },
		},
		Compare: compare,
	}
	if *role != "" {
		q.Predicate = func(u model.User) bool { return strings.EqualFold(u.Role, *role) }
	}

	renderUsers(a.out, paginate(lf, users, q))
	return nil
}

type userFlags struct {
	name        *string
	email       *string
	role        *string
	password    *string
	performance *float64
}

func newUserFlags(fs *flag.FlagSet) userFlags {
	return userFlags{
		name:        fs.String("name", "", "display name"),
		email:       fs.String("email", "", "email"),
		role:        fs.String("role", "", "role"),
		password:    fs.String("password", "", "password"),
		performance: fs.Float64("performance", 0, "performance score"),
	}
}

func (f userFlags) input(fs *flag.FlagSet) model.UserInput {
	in := model.UserInput{
		Name:     *f.name,
		Email:    *f.email,
		Role:     *f.role,
		Password: *f.password,
	}
	if visited(fs)["performance"] {
		perf := *f.performance
		in.Performance = &perf
	}
	return in
}

func (a *app) usersCreate(ctx context.Context, args []string) error {
	fs := a.flags("users create")
	uf := newUserFlags(fs)
	if err := parse(fs, args, "name", "email"); err != nil {
		return err
	}

	user, err := a.api.Users.Create(ctx, uf.input(fs))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created user %s (%s)\n", user.ID, user.DisplayName())
	return nil
}

func (a *app) usersUpdate(ctx context.Context, args []string) error {
	fs := a.flags("users update")
	id := fs.String("id", "", "user id")
	uf := newUserFlags(fs)
	if err := parse(fs, args, "id"); err != nil {
		return err
	}

	user, err := a.api.Users.Update(ctx, model.ID(*id), uf.input(fs))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated user %s (%s)\n", user.ID, user.DisplayName())
	return nil
}

func (a *app) usersDelete(ctx context.Context, args []string) error {
	fs := a.flags("users delete")
	id := fs.String("id", "", "user id")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}

	if err := a.api.Users.Delete(ctx, model.ID(*id)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted user %s\n", *id)
	return nil
}

func (a *app) fansList(ctx context.Context, args []string) error {
	fs := a.flags("fans list")
	lf := a.listFlags(fs)
	status := fs.String("status", "", "only fans with this status")
	sort := fs.String("sort", "", "order by name, spent or activity")
	if err := parse(fs, args); err != nil {
		return err
	}
	compare, err := sortBy(fs, fanSorts, *sort)
	if err != nil {
		return err
	}

	fans, err := a.api.Fans.List(ctx)
	if err != nil {
		return err
	}

	q := listing.Query[model.Fan]{
		Fields: []listing.Field[model.Fan]{
			func(f model.Fan) any { return f.Name },
			func(f model.Fan) any { return string(f.Status) },
			func(f model.Fan) any { return f.TotalSpent.Float64() },
		},
		Compare: compare,
	}
	if *status != "" {
		q.Predicate = func(f model.Fan) bool { return strings.EqualFold(string(f.Status), *status) }
	}

	renderFans(a.out, paginate(lf, fans, q), a.now())
	return nil
}

func (a *app) fansCreate(ctx context.Context, args []string) error {
	fs := a.flags("fans create")
	name := fs.String("name", "", "fan name")
	status := fs.String("status", "", "Spender, Good buyer or Timewaster")
	avatar := fs.String("avatar", "", "avatar url")
	spent := fs.Float64("spent", 0, "total spent")
	if err := parse(fs, args, "name"); err != nil {
		return err
	}
	if *status != "" && !model.FanStatus(*status).Valid() {
		fmt.Fprintf(fs.Output(), "unknown fan status %q\n", *status)
		return errUsage
	}

	fan, err := a.api.Fans.Create(ctx, model.FanInput{
		Name:       *name,
		Status:     model.FanStatus(*status),
		AvatarURL:  *avatar,
		TotalSpent: model.Amount(*spent),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created fan %s (%s)\n", fan.ID, fan.Name)
	return nil
}

func (a *app) contentList(ctx context.Context, args []string) error {
	fs := a.flags("content list")
	lf := a.listFlags(fs)
	status := fs.String("status", "", "only content with this status")
	if err := parse(fs, args); err != nil {
		return err
	}

	items, err := a.api.Content.List(ctx)
	if err != nil {
		return err
	}

	q := listing.Query[model.Content]{
		Fields: []listing.Field[model.Content]{
			func(c model.Content) any { return string(c.Status) },
			func(c model.Content) any { return c.ImageURL },
			func(c model.Content) any { return c.Price.Float64() },
		},
	}
	if *status != "" {
		want := model.ParseContentStatus(*status)
		q.Predicate = func(c model.Content) bool { return c.Status == want }
	}

	renderContent(a.out, paginate(lf, items, q))
	return nil
}

func (a *app) contentCreate(ctx context.Context, args []string) error {
	fs := a.flags("content create")
	status := fs.String("status", "", "content status")
	image := fs.String("image", "", "image url")
	price := fs.Float64("price", 0, "price")
	if err := parse(fs, args); err != nil {
		return err
	}

	item, err := a.api.Content.Create(ctx, model.ContentInput{
		Status:   model.ParseContentStatus(*status),
		ImageURL: *image,
		Price:    model.Amount(*price),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created content %s (%s)\n", item.ID, item.Status)
	return nil
}

func (a *app) imagesList(ctx context.Context, args []string) error {
	fs := a.flags("images list")
	lf := a.listFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}

	images, err := a.api.Images.List(ctx)
	if err != nil {
		return err
	}

	q := listing.Query[model.Image]{
		Fields: []listing.Field[model.Image]{
			func(i model.Image) any { return i.URL },
			func(i model.Image) any { return i.VersionTag },
			func(i model.Image) any { return i.Price.Float64() },
		},
	}

	renderImages(a.out, paginate(lf, images, q))
	return nil
}

func (a *app) imagesCreate(ctx context.Context, args []string) error {
	fs := a.flags("images create")
	url := fs.String("url", "", "image url")
	price := fs.Float64("price", 0, "price")
	tag := fs.String("tag", "", "version tag")
	color := fs.String("color", "", "version color")
	if err := parse(fs, args, "url"); err != nil {
		return err
	}

	img, err := a.api.Images.Create(ctx, model.ImageInput{
		URL:          *url,
		Price:        model.Amount(*price),
		VersionTag:   *tag,
		VersionColor: *color,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created image %s\n", img.ID)
	return nil
}

func (a *app) messagesList(ctx context.Context, args []string) error {
	fs := a.flags("messages list")
	lf := a.listFlags(fs)
	from := fs.String("from", "", "first participant id")
	to := fs.String("to", "", "second participant id")
	if err := parse(fs, args, "from", "to"); err != nil {
		return err
	}

	msgs, err := a.api.Messages.List(ctx, model.ID(*from), model.ID(*to))
	if err != nil {
		return err
	}

	q := listing.Query[model.Message]{
		Fields: []listing.Field[model.Message]{
			func(m model.Message) any { return m.Content },
		},
	}

	renderMessages(a.out, paginate(lf, msgs, q))
	return nil
}

func (a *app) messagesSend(ctx context.Context, args []string) error {
	fs := a.flags("messages send")
	from := fs.String("from", "", "sender id")
	to := fs.String("to", "", "recipient id")
	text := fs.String("text", "", "message text")
	if err := parse(fs, args, "from", "to", "text"); err != nil {
		return err
	}

	msg, err := a.api.Messages.Create(ctx, model.NewMessage{
		FromID:  model.ID(*from),
		ToID:    model.ID(*to),
		Content: *text,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sent message %s\n", msg.ID)
	return nil
}
