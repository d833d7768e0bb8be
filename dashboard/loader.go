// Package dashboard loads the role-scoped data each dashboard shows after
// login. Every section is fetched independently and concurrently; a failed
// fetch is logged and its section stays empty. There are no retries, so the
// worst case is an empty panel, never a failed dashboard.
package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agriconnect/backend"
)

// DefaultWeatherLocation is used until the account has a location on file.
const DefaultWeatherLocation = "Kigali"

// Backend is the read surface the loaders consume.
type Backend interface {
	GetProfile(ctx context.Context, token string) (backend.Profile, error)
	Products(ctx context.Context, token string) ([]backend.Product, error)
	Listings(ctx context.Context, token string) ([]backend.Listing, error)
	BuyerOrders(ctx context.Context, token string) ([]backend.Order, error)
	TransporterDeliveries(ctx context.Context, token string) ([]backend.Delivery, error)
	AdminStats(ctx context.Context, token string) (backend.AdminStats, error)
	AdminUsers(ctx context.Context, token string) ([]backend.AdminUser, error)
	Weather(ctx context.Context, location string) (backend.Weather, error)
	Announcements(ctx context.Context, token string) ([]backend.Announcement, error)
}

// Loader fetches dashboard snapshots.
type Loader struct {
	backend Backend
	logger  *zap.Logger
}

// NewLoader builds a Loader.
func NewLoader(b Backend) *Loader {
	return &Loader{backend: b, logger: zap.NewNop()}
}

// WithLogger sets the logger for fetch failures.
func (l *Loader) WithLogger(logger *zap.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// FarmerSnapshot is everything the farmer dashboard shows on mount.
type FarmerSnapshot struct {
	Profile       backend.Profile
	Products      []backend.Product
	Weather       *backend.Weather
	Announcements []backend.Announcement
}

// LoadFarmer fetches the farmer dashboard sections.
func (l *Loader) LoadFarmer(ctx context.Context, session *backend.Session) FarmerSnapshot {
	var snap FarmerSnapshot
	token := session.AccessToken
	location := session.User.Metadata.Location
	if location == "" {
		location = DefaultWeatherLocation
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := l.backend.GetProfile(ctx, token)
		if err != nil {
			l.logger.Error("load profile", zap.Error(err))
			return nil
		}
		snap.Profile = profile
		return nil
	})
	g.Go(func() error {
		products, err := l.backend.Products(ctx, token)
		if err != nil {
			l.logger.Error("load products", zap.Error(err))
			return nil
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		weather, err := l.backend.Weather(ctx, location)
		if err != nil {
			l.logger.Error("load weather", zap.Error(err))
			return nil
		}
		snap.Weather = &weather
		return nil
	})
	g.Go(func() error {
		announcements, err := l.backend.Announcements(ctx, token)
		if err != nil {
			l.logger.Error("load announcements", zap.Error(err))
			return nil
		}
		snap.Announcements = announcements
		return nil
	})
	_ = g.Wait()
	return snap
}

// BuyerSnapshot is everything the buyer dashboard shows on mount.
type BuyerSnapshot struct {
	Profile  backend.Profile
	Products []backend.Product
	Orders   []backend.Order
	Listings []backend.Listing
}

// LoadBuyer fetches the buyer dashboard sections.
func (l *Loader) LoadBuyer(ctx context.Context, session *backend.Session) BuyerSnapshot {
	var snap BuyerSnapshot
	token := session.AccessToken

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := l.backend.GetProfile(ctx, token)
		if err != nil {
			l.logger.Error("load profile", zap.Error(err))
			return nil
		}
		snap.Profile = profile
		return nil
	})
	g.Go(func() error {
		products, err := l.backend.Products(ctx, token)
		if err != nil {
			l.logger.Error("load products", zap.Error(err))
			return nil
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		orders, err := l.backend.BuyerOrders(ctx, token)
		if err != nil {
			l.logger.Error("load orders", zap.Error(err))
			return nil
		}
		snap.Orders = orders
		return nil
	})
	g.Go(func() error {
		listings, err := l.backend.Listings(ctx, token)
		if err != nil {
			l.logger.Error("load listings", zap.Error(err))
			return nil
		}
		snap.Listings = listings
		return nil
	})
	_ = g.Wait()
	return snap
}

// TransporterSnapshot is everything the transporter dashboard shows on mount.
type TransporterSnapshot struct {
	Profile    backend.Profile
	Deliveries []backend.Delivery
}

// LoadTransporter fetches the transporter dashboard sections.
func (l *Loader) LoadTransporter(ctx context.Context, session *backend.Session) TransporterSnapshot {
	var snap TransporterSnapshot
	token := session.AccessToken

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := l.backend.GetProfile(ctx, token)
		if err != nil {
			l.logger.Error("load profile", zap.Error(err))
			return nil
		}
		snap.Profile = profile
		return nil
	})
	g.Go(func() error {
		deliveries, err := l.backend.TransporterDeliveries(ctx, token)
		if err != nil {
			l.logger.Error("load deliveries", zap.Error(err))
			return nil
		}
		snap.Deliveries = deliveries
		return nil
	})
	_ = g.Wait()
	return snap
}

// AdminSnapshot is everything the admin dashboard shows on mount.
type AdminSnapshot struct {
	Profile backend.Profile
	Stats   backend.AdminStats
	Users   []backend.AdminUser
}

// LoadAdmin fetches the admin dashboard sections.
func (l *Loader) LoadAdmin(ctx context.Context, session *backend.Session) AdminSnapshot {
	var snap AdminSnapshot
	token := session.AccessToken

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := l.backend.GetProfile(ctx, token)
		if err != nil {
			l.logger.Error("load profile", zap.Error(err))
			return nil
		}
		snap.Profile = profile
		return nil
	})
	g.Go(func() error {
		stats, err := l.backend.AdminStats(ctx, token)
		if err != nil {
			l.logger.Error("load stats", zap.Error(err))
			return nil
		}
		snap.Stats = stats
		return nil
	})
	g.Go(func() error {
		users, err := l.backend.AdminUsers(ctx, token)
		if err != nil {
			l.logger.Error("load users", zap.Error(err))
			return nil
		}
		snap.Users = users
		return nil
	})
	_ = g.Wait()
	return snap
}

// SearchUsers filters the admin user list by substring match on name, email
// or role, case insensitive. An empty query keeps everything.
func SearchUsers(users []backend.AdminUser, query string) []backend.AdminUser {
	if query == "" {
		return users
	}
	q := strings.ToLower(query)
	out := make([]backend.AdminUser, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.UserType), q) {
			out = append(out, u)
		}
	}
	return out
}
