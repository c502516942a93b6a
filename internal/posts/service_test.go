package posts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/api/internal/models"
)

func testAuthor(name string) *models.User {
	return &models.User{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Avatar: "https://www.gravatar.com/avatar/x?s=200&r=pg&d=mm",
	}
}

func TestCreate_SnapshotsAuthor(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	alice := testAuthor("Alice")

	p, err := svc.Create(context.Background(), alice, "hello world")
	require.NoError(t, err)
	require.False(t, p.ID.IsZero())
	require.Equal(t, alice.ID, p.User)
	require.Equal(t, "Alice", p.Name)
	require.Equal(t, alice.Avatar, p.Avatar)
	require.NotNil(t, p.Likes)
	require.NotNil(t, p.Comments)
	require.False(t, p.Date.IsZero())
}

func TestList_NewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	alice := testAuthor("Alice")

	first, err := svc.Create(context.Background(), alice, "first")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), alice, "second")
	require.NoError(t, err)
	// force distinct timestamps regardless of clock resolution
	second.Date = first.Date.Add(1)
	_, _ = repo.Create(context.Background(), second)

	out, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "second", out[0].Text)
	require.Equal(t, "first", out[1].Text)
}

func TestDelete_OwnershipEnforced(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	alice := testAuthor("Alice")
	bob := testAuthor("Bob")

	p, err := svc.Create(context.Background(), alice, "mine")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), p.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	// post still exists after the rejected attempt
	_, err = svc.Get(context.Background(), p.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID, alice.ID))
	_, err = svc.Get(context.Background(), p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_MissingPost(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	err := svc.Delete(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLike_OncePerUser(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	alice := testAuthor("Alice")
	bob := testAuthor("Bob")

	p, err := svc.Create(context.Background(), alice, "likeable")
	require.NoError(t, err)

	likes, err := svc.Like(context.Background(), p.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.Equal(t, bob.ID, likes[0].User)

	_, err = svc.Like(context.Background(), p.ID, bob.ID)
	require.ErrorIs(t, err, ErrAlreadyLiked)

	// a different user may still like
	likes, err = svc.Like(context.Background(), p.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, likes, 2)
}

func TestUnlike(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	alice := testAuthor("Alice")
	bob := testAuthor("Bob")

	p, err := svc.Create(context.Background(), alice, "likeable")
	require.NoError(t, err)

	// unlike before like is rejected
	_, err = svc.Unlike(context.Background(), p.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotLiked)

	_, err = svc.Like(context.Background(), p.ID, bob.ID)
	require.NoError(t, err)
	likes, err := svc.Unlike(context.Background(), p.ID, bob.ID)
	require.NoError(t, err)
	require.Empty(t, likes)
}

func TestComment_PrependsWithIDAndSnapshot(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	alice := testAuthor("Alice")
	bob := testAuthor("Bob")

	p, err := svc.Create(context.Background(), alice, "discuss")
	require.NoError(t, err)

	comments, err := svc.Comment(context.Background(), p.ID, bob, "first!")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.False(t, comments[0].ID.IsZero())
	require.Equal(t, bob.ID, comments[0].User)
	require.Equal(t, "Bob", comments[0].Name)
	require.False(t, comments[0].Date.IsZero())

	comments, err = svc.Comment(context.Background(), p.ID, alice, "second")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "second", comments[0].Text)
}

func TestDeleteComment_TargetsCommentID(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	alice := testAuthor("Alice")
	bob := testAuthor("Bob")

	p, err := svc.Create(context.Background(), alice, "discuss")
	require.NoError(t, err)

	// bob leaves two comments; deleting one must not touch the other
	_, err = svc.Comment(context.Background(), p.ID, bob, "keep me")
	require.NoError(t, err)
	comments, err := svc.Comment(context.Background(), p.ID, bob, "delete me")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	target := comments[0]
	require.Equal(t, "delete me", target.Text)

	remaining, err := svc.DeleteComment(context.Background(), p.ID, target.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "keep me", remaining[0].Text)
}

func TestDeleteComment_OwnershipAndMissing(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	alice := testAuthor("Alice")
	bob := testAuthor("Bob")

	p, err := svc.Create(context.Background(), alice, "discuss")
	require.NoError(t, err)
	comments, err := svc.Comment(context.Background(), p.ID, bob, "bob's comment")
	require.NoError(t, err)
	cid := comments[0].ID

	// only the comment's author may remove it, even the post author cannot
	_, err = svc.DeleteComment(context.Background(), p.ID, cid, alice.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.DeleteComment(context.Background(), p.ID, primitive.NewObjectID(), bob.ID)
	require.ErrorIs(t, err, ErrCommentNotFound)

	_, err = svc.DeleteComment(context.Background(), primitive.NewObjectID(), cid, bob.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteByUser_Idempotent(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	alice := testAuthor("Alice")
	bob := testAuthor("Bob")

	_, err := svc.Create(context.Background(), alice, "one")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), alice, "two")
	require.NoError(t, err)
	keep, err := svc.Create(context.Background(), bob, "bob's post")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByUser(context.Background(), alice.ID))
	require.NoError(t, svc.DeleteByUser(context.Background(), alice.ID))

	out, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, keep.ID, out[0].ID)
}
