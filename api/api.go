package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	"github.com/skillupnow/skillupnow/api/middleware"
	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/config"
	"github.com/skillupnow/skillupnow/core/auth"
	"github.com/skillupnow/skillupnow/core/cart"
	"github.com/skillupnow/skillupnow/core/course"
	"github.com/skillupnow/skillupnow/core/order"
	"github.com/skillupnow/skillupnow/core/token"
	"github.com/skillupnow/skillupnow/core/user"
	"github.com/skillupnow/skillupnow/rate"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

type APIConfig struct {
	CorsOrigin       string
	Log              logrus.FieldLogger
	DB               *sqlx.DB
	Issuer           *token.Issuer
	Limiter          *rate.Limiter
	Paypal           *paypal.Client
	Stripe           *stripecl.API
	StripeCfg        config.Stripe
	Providers        map[string]auth.Provider
	LoginRedirectURL string
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Issuer)
	org := auth.Organization()
	limited := middleware.RateLimit(cfg.Limiter)

	a.Handle(http.MethodPost, "/signup", user.HandleSignup(cfg.DB, cfg.Issuer), limited)
	a.Handle(http.MethodPost, "/login", auth.HandleLogin(cfg.DB, cfg.Issuer), limited)
	a.Handle(http.MethodGet, "/auth/oauth-login/{provider}", auth.HandleOauthLogin(cfg.Providers))
	a.Handle(http.MethodGet, "/auth/oauth-callback/{provider}", auth.HandleOauthCallback(cfg.DB, cfg.Issuer, cfg.Providers, cfg.LoginRedirectURL))

	a.Handle(http.MethodGet, "/customer", user.HandleShowCustomer(cfg.DB), authen)
	a.Handle(http.MethodPut, "/customer", user.HandleUpdateCustomer(cfg.DB), authen)
	a.Handle(http.MethodPut, "/user/credential", user.HandleUpdateCredential(cfg.DB), authen)
	a.Handle(http.MethodGet, "/organization/{id:[0-9]+}", user.HandleShowOrganization(cfg.DB))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodPut, "/cart", cart.HandleModify(cfg.DB), authen)

	a.Handle(http.MethodGet, "/courses/owned", course.HandleListOwned(cfg.DB), authen)
	a.Handle(http.MethodGet, "/courses/{id}", course.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/courses", course.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/courses", course.HandleCreate(cfg.DB), authen, org)
	a.Handle(http.MethodPut, "/courses/{id}", course.HandleUpdate(cfg.DB), authen, org)

	a.Handle(http.MethodPost, "/orders/paypal", order.HandlePaypalCheckout(cfg.DB, cfg.Paypal), authen)
	a.Handle(http.MethodPost, "/orders/paypal/{id}/capture", order.HandlePaypalCapture(cfg.DB, cfg.Paypal), authen)
	a.Handle(http.MethodPost, "/orders/stripe", order.HandleStripeCheckout(cfg.DB, cfg.Stripe, cfg.StripeCfg), authen)
	a.Handle(http.MethodPost, "/orders/stripe/capture", order.HandleStripeCapture(cfg.DB, cfg.StripeCfg))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
