package application

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name string
}

type fakeController struct {
	key string
}

func (c *fakeController) Key() string { return c.key }

func (c *fakeController) Register(r *mux.Router) {
	r.HandleFunc(c.key, func(w http.ResponseWriter, r *http.Request) {})
}

func TestApplication_ServiceRegistry(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterServices(&fakeService{name: "approval"})

	svc := app.Service(fakeService{}).(*fakeService)
	assert.Equal(t, "approval", svc.name)
	assert.Len(t, app.Services(), 1)
}

func TestApplication_ServicePanicsWhenMissing(t *testing.T) {
	app := New(&ApplicationOptions{})
	require.Panics(t, func() {
		app.Service(fakeService{})
	})
}

func TestApplication_ControllersSortedAndDeduplicated(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterControllers(
		&fakeController{key: "/health"},
		&fakeController{key: "/api"},
		&fakeController{key: "/health"},
	)

	controllers := app.Controllers()
	require.Len(t, controllers, 2)
	assert.Equal(t, "/api", controllers[0].Key())
	assert.Equal(t, "/health", controllers[1].Key())
}

func TestApplication_Defaults(t *testing.T) {
	app := New(&ApplicationOptions{})
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.EventPublisher())
	assert.Nil(t, app.DB())
}
