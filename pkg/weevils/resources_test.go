package weevils_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/weevils-io/weevils-go/pkg/weevils"
)

func TestResource_Equal(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	host := weevils.GitHost{ID: id, Name: "GitHub", Slug: "github"}
	renamed := weevils.GitHost{ID: id, Name: "GitHub Enterprise"}
	image := weevils.BaseImage{ID: id, Name: "GitHub"}

	assert.True(t, host.Equal(renamed))
	assert.True(t, weevils.SameResource(host, &renamed))
	assert.False(t, host.Equal(image))
	assert.False(t, host.Equal(weevils.GitHost{ID: uuid.New()}))
	assert.False(t, host.Equal(nil))
	assert.False(t, weevils.SameResource(nil, host))
}

func TestResource_Kind(t *testing.T) {
	t.Parallel()

	resources := map[weevils.Kind]weevils.Resource{
		weevils.KindGitHost:    weevils.GitHost{},
		weevils.KindAccount:    weevils.Account{},
		weevils.KindGitHostApp: weevils.GitHostApp{},
		weevils.KindRepository: weevils.Repository{},
		weevils.KindBaseImage:  weevils.BaseImage{},
		weevils.KindWeevil:     weevils.Weevil{},
		weevils.KindArtifact:   weevils.Artifact{},
		weevils.KindJob:        weevils.Job{},
		weevils.KindUser:       weevils.User{},
	}

	for kind, res := range resources {
		assert.Equal(t, kind, res.Kind())
		assert.Equal(t, uuid.Nil, res.ResourceID())
	}
}

func TestUser_Validate(t *testing.T) {
	t.Parallel()

	host := weevils.GitHost{ID: uuid.New()}
	user := weevils.User{
		ID:       uuid.New(),
		Accounts: []weevils.Account{{ID: uuid.New(), Host: host}, {ID: uuid.New()}},
	}

	err := user.Validate()
	assert.ErrorIs(t, err, weevils.ErrIncompleteRecord)
	assert.Contains(t, err.Error(), "accounts[1]")

	user.Accounts[1].Host = host
	assert.NoError(t, user.Validate())
}
