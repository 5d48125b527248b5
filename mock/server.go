package mock

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/jwt"
)

type HandlerFunc func(*gin.Context) (interface{}, error)

// JSONFormatter renders the result of next, or its error as
// `{"message": ...}` with the code the error carries.
func JSONFormatter(next HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := next(c)
		if err != nil {
			c.JSON(errors.Code(err), map[string]interface{}{
				"message": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// Handler returns the router of the fake backend. Every route lives under
// /api, like the real one.
func (b *Backend) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery(), b.record)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	api := router.Group("/api")

	// Unauthenticated
	api.POST("/auth/login", JSONFormatter(b.login))
	api.GET("/shared/token/:token", JSONFormatter(b.shareByToken))
	api.GET("/shared/download/:token", b.downloadShare)

	authed := api.Group("", jwt.Middleware(b.encoder), b.authenticate)

	authed.POST("/auth/register", JSONFormatter(b.adminOnly(b.register)))
	authed.GET("/auth/users", JSONFormatter(b.adminOnly(b.listUsers)))
	authed.PUT("/auth/users/:id", JSONFormatter(b.adminOnly(b.updateUser)))
	authed.DELETE("/auth/users/:id", JSONFormatter(b.adminOnly(b.deleteUser)))

	authed.GET("/files", JSONFormatter(b.listFiles))
	authed.GET("/files/root", JSONFormatter(b.rootFiles))
	authed.GET("/files/trash", JSONFormatter(b.trashFiles))
	authed.GET("/files/favourites", JSONFormatter(b.favouriteFiles))
	authed.GET("/files/favourites/navigate", JSONFormatter(b.navigateFavouriteFiles))
	authed.GET("/files/download/:id", b.downloadFile)
	authed.POST("/files/upload", JSONFormatter(b.upload))
	authed.POST("/files/upload-folder", JSONFormatter(b.uploadFolder))
	authed.PUT("/files/:id", JSONFormatter(b.renameFile))
	authed.PUT("/files/:id/restore", JSONFormatter(b.restoreFile))
	authed.PUT("/files/:id/favourite", JSONFormatter(b.toggleFileFavourite))
	authed.DELETE("/files/:id", JSONFormatter(b.deleteFile))
	authed.DELETE("/files/:id/permanent", JSONFormatter(b.purgeFile))

	authed.GET("/folders", JSONFormatter(b.listFolders))
	authed.GET("/folders/root", JSONFormatter(b.rootFolders))
	authed.GET("/folders/trash", JSONFormatter(b.trashFolders))
	authed.GET("/folders/favourites", JSONFormatter(b.favouriteFolders))
	authed.GET("/folders/favourites/navigate", JSONFormatter(b.navigateFavouriteFolders))
	authed.GET("/folders/tree/structure", JSONFormatter(b.folderTree))
	authed.GET("/folders/:id", JSONFormatter(b.getFolder))
	authed.GET("/folders/:id/download", b.downloadFolder)
	authed.POST("/folders", JSONFormatter(b.createFolder))
	authed.PUT("/folders/:id", JSONFormatter(b.renameFolder))
	authed.PUT("/folders/:id/restore", JSONFormatter(b.restoreFolder))
	authed.PUT("/folders/:id/favourite", JSONFormatter(b.toggleFolderFavourite))
	authed.DELETE("/folders/:id", JSONFormatter(b.deleteFolder))
	authed.DELETE("/folders/:id/permanent", JSONFormatter(b.purgeFolder))

	authed.POST("/permissions/assign", JSONFormatter(b.assignPermission))
	authed.GET("/permissions/resource", JSONFormatter(b.resourcePermissions))
	authed.GET("/permissions/user", JSONFormatter(b.userPermissions))
	authed.DELETE("/permissions/remove", JSONFormatter(b.removePermission))

	authed.POST("/shared", JSONFormatter(b.createShare))
	authed.GET("/shared/with-me", JSONFormatter(b.sharedWithMe))
	authed.GET("/shared/by-me", JSONFormatter(b.sharedByMe))
	authed.PUT("/shared/:id", JSONFormatter(b.updateShare))
	authed.DELETE("/shared/:id", JSONFormatter(b.deleteShare))

	return router
}

// record counts the request and answers the injected failure, if any.
func (b *Backend) record(c *gin.Context) {
	key := callKey(c.Request.Method, c.Request.URL.Path)

	b.mu.Lock()
	b.calls[key]++
	f, failing := b.failures[key]
	b.mu.Unlock()

	if failing {
		c.AbortWithStatusJSON(f.status, gin.H{"message": f.message})
		return
	}
	c.Next()
}

const userKey = "user"

// authenticate loads the user of the token claims. Tokens of deleted users
// are rejected.
func (b *Backend) authenticate(c *gin.Context) {
	claims, ok := jwt.FromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "no token found"})
		return
	}

	b.mu.Lock()
	user, ok := b.users[claims.UserID]
	b.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unknown user"})
		return
	}

	c.Set(userKey, user)
	c.Next()
}

func currentUser(c *gin.Context) fileshelf.User {
	return c.MustGet(userKey).(fileshelf.User)
}

func (b *Backend) adminOnly(next HandlerFunc) HandlerFunc {
	return func(c *gin.Context) (interface{}, error) {
		if !currentUser(c).IsAdmin() {
			return nil, errors.New("Access denied. Super admin only.", errors.Forbidden())
		}
		return next(c)
	}
}

func idParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id", errors.BadRequest())
	}
	return id, nil
}

// optionalID reads a nullable id from the query string.
func optionalID(c *gin.Context, name string) (*int, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" || v == "null" {
		return nil, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.New("invalid "+name, errors.BadRequest())
	}
	return &id, nil
}

func message(msg string) map[string]string {
	return map[string]string{"message": msg}
}
