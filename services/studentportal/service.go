package studentportal

import (
	"errors"
	"log/slog"
	"net/http"

	"cefetid-backend/lib/campus"
	"cefetid-backend/lib/scrapers/cefetaluno"
	"cefetid-backend/lib/textutil"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/studentportal")

// SsoCookie carries the bridged portal session between the frontend and
// this service. It is distinct from the portal's own cookie on purpose:
// the upstream value never reaches the browser under its real name.
const SsoCookie = "CEFETID_SSO"

// User-facing messages are Portuguese because the frontend shows them
// verbatim. The scraping layer itself never produces presentation text.
const (
	msgCpaBlocked     = "Login temporariamente indisponível devido ao período de CPA. Tente novamente em alguns dias."
	msgLoginFailed    = "Tente novamente mais tarde."
	msgCpaManual      = "Acesse o sistema do CPA, preencha o formulario e volte para continuar."
	msgMissingSession = "Sessão ausente. Faça login novamente."
	msgExpiredSession = "Sessão expirada. Faça login novamente."
	msgUpstreamFailed = "Falha ao consultar o portal. Tente novamente mais tarde."
)

type Options struct {
	Scraper cefetaluno.ClientOptions
}

type Service struct {
	opts Options
}

func NewService(opts Options) Service {
	return Service{opts: opts}
}

func (s Service) Register(router gin.IRouter) {
	router.POST("/v1/login", s.handleLogin)
	router.GET("/v1/login/cpa", s.handleCpaStatus)
	router.POST("/v1/login/cpa", s.handleCpaSubmit)
	router.GET("/v1/users", s.handleGetUser)
	router.GET("/v1/disciplinas/notas", s.handleGetGrades)
	router.GET("/v1/student/:studentId/schedule", s.handleGetSchedule)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s Service) handleLogin(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "handleLogin")
	defer span.End()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}

	// one client per login, so concurrent users never share a jar
	client, err := cefetaluno.NewClient(s.opts.Scraper)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgLoginFailed})
		return
	}

	result, err := client.Login(ctx, req.Username, req.Password)
	if err != nil {
		var invalidErr *cefetaluno.InvalidCredentialsError
		switch {
		case errors.Is(err, cefetaluno.ErrCpaBlocked):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgCpaBlocked})
		case errors.As(err, &invalidErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Message})
		default:
			slog.WarnContext(ctx, "login failed", "err", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": msgLoginFailed})
		}
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SsoCookie, result.Session, 0, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{
		"status":  gin.H{"ok": true},
		"student": result.Student,
	})
}

func (s Service) handleCpaStatus(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "handleCpaStatus")
	defer span.End()

	under := cefetaluno.CheckCpaStatus(ctx, s.opts.Scraper)
	c.JSON(http.StatusOK, gin.H{"underCpa": under})
}

type cpaSubmitRequest struct {
	Cpf string `json:"cpf" binding:"required"`
}

func (s Service) handleCpaSubmit(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "handleCpaSubmit")
	defer span.End()

	var req cpaSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}

	link, err := cefetaluno.SubmitCpaId(ctx, s.opts.Scraper, req.Cpf)
	if err != nil {
		var manualErr *cefetaluno.CpaManualError
		if errors.As(err, &manualErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   manualErr.Reason,
				"cpaUrl":  manualErr.CpaUrl,
				"message": msgCpaManual,
			})
			return
		}
		slog.WarnContext(ctx, "cpa submission failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": msgUpstreamFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

func (s Service) handleGetUser(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "handleGetUser")
	defer span.End()

	client, ok := s.sessionClient(c)
	if !ok {
		return
	}

	identity, err := client.Identity(ctx)
	if err != nil {
		s.renderFetchError(c, err)
		return
	}
	profile, err := client.Profile(ctx)
	if err != nil {
		s.renderFetchError(c, err)
		return
	}
	summary, err := client.ReportSummary(ctx)
	if err != nil {
		s.renderFetchError(c, err)
		return
	}

	courseLabel := textutil.PickFirst(summary.CourseLabel, profile.Course)
	campusName := textutil.PickFirst(
		campus.FromCourseLabel(courseLabel),
		profile.Campus,
	)

	c.JSON(http.StatusOK, gin.H{
		"name":         textutil.CapitalizeName(identity.Name),
		"matricula":    identity.StudentId,
		"cpf":          profile.Cpf,
		"curso":        courseLabel,
		"campus":       campusName,
		"periodoAtual": textutil.PickFirst(summary.CurrentPeriod, profile.CurrentPeriod),
	})
}

func (s Service) handleGetGrades(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "handleGetGrades")
	defer span.End()

	client, ok := s.sessionClient(c)
	if !ok {
		return
	}

	semesters, err := client.Grades(ctx)
	if err != nil {
		s.renderFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"semestres": semesters})
}

func (s Service) handleGetSchedule(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "handleGetSchedule")
	defer span.End()

	client, ok := s.sessionClient(c)
	if !ok {
		return
	}

	schedule, err := client.Schedule(ctx, c.Param("studentId"))
	if err != nil {
		s.renderFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (s Service) sessionClient(c *gin.Context) (*cefetaluno.SessionClient, bool) {
	session := sessionFromRequest(c)
	if session == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgMissingSession})
		return nil, false
	}

	client, err := cefetaluno.NewSessionClient(cefetaluno.SessionOptions{
		BaseUrl:      s.opts.Scraper.BaseUrl,
		Timeout:      s.opts.Scraper.Timeout,
		RedirectHops: s.opts.Scraper.RedirectHops,
		Session:      session,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUpstreamFailed})
		return nil, false
	}
	return client, true
}

// sessionFromRequest accepts the session either as the SSO cookie
// (browser frontend) or as a bearer token (scripted clients).
func sessionFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SsoCookie); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

func (s Service) renderFetchError(c *gin.Context, err error) {
	if errors.Is(err, cefetaluno.ErrMissingIdentity) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgExpiredSession})
		return
	}
	slog.WarnContext(c.Request.Context(), "portal fetch failed", "err", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": msgUpstreamFailed})
}
