package app

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	audithttp "github.com/stockfy/platform/internal/audit/delivery/http"
	auditdomain "github.com/stockfy/platform/internal/audit/domain"
	auditrepo "github.com/stockfy/platform/internal/audit/repository"
	auditusecase "github.com/stockfy/platform/internal/audit/usecase"
	cathttp "github.com/stockfy/platform/internal/catalog/delivery/http"
	catcommand "github.com/stockfy/platform/internal/catalog/usecase/command"
	catquery "github.com/stockfy/platform/internal/catalog/usecase/query"
	invhttp "github.com/stockfy/platform/internal/inventory/delivery/http"
	invcommand "github.com/stockfy/platform/internal/inventory/usecase/command"
	invquery "github.com/stockfy/platform/internal/inventory/usecase/query"
	notifhttp "github.com/stockfy/platform/internal/notification/delivery/http"
	notifdomain "github.com/stockfy/platform/internal/notification/domain"
	notifrepo "github.com/stockfy/platform/internal/notification/repository"
	notifusecase "github.com/stockfy/platform/internal/notification/usecase"
	"github.com/stockfy/platform/internal/report"
	reporthttp "github.com/stockfy/platform/internal/report/delivery/http"
	tenanthttp "github.com/stockfy/platform/internal/tenant/delivery/http"
	tenantdomain "github.com/stockfy/platform/internal/tenant/domain"
	tenantrepo "github.com/stockfy/platform/internal/tenant/repository"
	tenantcommand "github.com/stockfy/platform/internal/tenant/usecase/command"
	tenantquery "github.com/stockfy/platform/internal/tenant/usecase/query"
	"github.com/stockfy/platform/pkg/auth"
	"github.com/stockfy/platform/pkg/config"
)

// App bundles the HTTP handlers served by the API binary
type App struct {
	Inventory     *invhttp.InventoryHandler
	Catalog       *cathttp.CatalogHandler
	Tenants       *tenanthttp.TenantHandler
	Notifications *notifhttp.NotificationHandler
	Audit         *audithttp.AuditHandler
	Reports       *reporthttp.ReportHandler
}

// ProvideTokenManager provides the JWT token manager
func ProvideTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.JWTSecret, 0)
}

// ProvideAuditRepository provides the audit repository
func ProvideAuditRepository(db *gorm.DB) auditdomain.AuditRepository {
	return auditrepo.NewGormAuditRepository(db)
}

// ProvideNotificationRepository provides the notification repository
func ProvideNotificationRepository(db *gorm.DB) notifdomain.NotificationRepository {
	return notifrepo.NewGormNotificationRepository(db)
}

// ProvideTenantRepository provides the tenant repository, slug-cached
// when Redis is configured
func ProvideTenantRepository(db *gorm.DB, cache *redis.Client) tenantdomain.TenantRepository {
	repo := tenantrepo.NewGormTenantRepository(db)
	if cache == nil {
		return repo
	}
	return tenantrepo.NewCachedTenantRepository(repo, cache)
}

// ProvideMembershipRepository provides the membership repository
func ProvideMembershipRepository(db *gorm.DB) tenantdomain.MembershipRepository {
	return tenantrepo.NewGormMembershipRepository(db)
}

// ProvideCreateVariantHandler provides the create variant command handler
func ProvideCreateVariantHandler(db *gorm.DB, cfg *config.Config) *invcommand.CreateVariantHandler {
	return invcommand.NewCreateVariantHandler(db, cfg.SKUPrefix)
}

// ProvideSuggestSKUHandler provides the SKU suggestion query handler
func ProvideSuggestSKUHandler(db *gorm.DB, cfg *config.Config) *invquery.SuggestSKUHandler {
	return invquery.NewSuggestSKUHandler(db, cfg.SKUPrefix)
}

// ProvideCreateProductHandler provides the create product command handler
func ProvideCreateProductHandler(db *gorm.DB, cfg *config.Config) *catcommand.CreateProductHandler {
	return catcommand.NewCreateProductHandler(db, cfg.SKUPrefix)
}

// ProvideTenantHandler provides the tenant HTTP handler
func ProvideTenantHandler(
	createHandler *tenantcommand.CreateTenantHandler,
	subscriptionHandler *tenantcommand.ApplySubscriptionEventHandler,
	resolveHandler *tenantquery.ResolveTenantHandler,
	membersHandler *tenantquery.ListMembersHandler,
	recorder auditusecase.Recorder,
	tokens *auth.TokenManager,
	cfg *config.Config,
) *tenanthttp.TenantHandler {
	return tenanthttp.NewTenantHandler(createHandler, subscriptionHandler, resolveHandler,
		membersHandler, recorder, tokens, cfg.BillingWebhookSecret)
}

// HandlerSet wires every delivery handler and its dependencies
var HandlerSet = wire.NewSet(
	ProvideTokenManager,
	ProvideAuditRepository,
	ProvideNotificationRepository,
	ProvideTenantRepository,
	ProvideMembershipRepository,

	ProvideCreateVariantHandler,
	invcommand.NewUpdateVariantHandler,
	invcommand.NewDeleteVariantHandler,
	invcommand.NewCreateMovementHandler,
	invquery.NewListVariantsHandler,
	invquery.NewListMovementsHandler,
	ProvideSuggestSKUHandler,
	invquery.NewDashboardHandler,

	ProvideCreateProductHandler,
	catcommand.NewUpdateProductHandler,
	catcommand.NewDeleteProductHandler,
	catcommand.NewCreateCategoryHandler,
	catquery.NewListProductsHandler,
	catquery.NewGetProductHandler,
	catquery.NewListCategoriesHandler,

	tenantcommand.NewCreateTenantHandler,
	tenantcommand.NewApplySubscriptionEventHandler,
	tenantquery.NewResolveTenantHandler,
	tenantquery.NewListMembersHandler,

	notifusecase.NewNotifier,
	notifusecase.NewListNotificationsHandler,
	notifusecase.NewCountUnreadHandler,
	notifusecase.NewMarkAllReadHandler,

	report.NewStockReportService,

	invhttp.NewInventoryHandler,
	cathttp.NewCatalogHandler,
	ProvideTenantHandler,
	notifhttp.NewNotificationHandler,
	audithttp.NewAuditHandler,
	reporthttp.NewReportHandler,
)
