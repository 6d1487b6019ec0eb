// Package archive copies finished ResultFiles into MongoDB GridFS.
package archive

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filename-bench/server"
)

const DefaultDatabase = "filebench"

var _ server.Archiver = (*GridFS)(nil)

type GridFS struct {
	client *mongo.Client
	bucket *gridfs.Bucket
}

// Open connects to uri, checks the connection and opens the default bucket of
// database.
func Open(ctx context.Context, uri, database string) (*GridFS, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(err, "could not ping MongoDB")
	}
	bucket, err := gridfs.NewBucket(client.Database(database))
	if err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(err, "creating GridFS bucket")
	}
	return &GridFS{client: client, bucket: bucket}, nil
}

// Archive uploads the file at path under its base name.
func (g *GridFS) Archive(ctx context.Context, path string, meta server.Metadata) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := g.bucket.SetWriteDeadline(deadline); err != nil {
			return errors.Wrap(err, "setting upload deadline")
		}
	}
	opts := options.GridFSUpload().SetMetadata(metadataDoc(meta))
	if _, err := g.bucket.UploadFromStream(filepath.Base(path), f, opts); err != nil {
		return errors.Wrapf(err, "uploading %s", path)
	}
	return nil
}

func (g *GridFS) Close(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}

func metadataDoc(meta server.Metadata) bson.D {
	return bson.D{
		{Key: "session", Value: meta.SessionID},
		{Key: "server_ip", Value: meta.ServerIP},
		{Key: "dir", Value: meta.Dir},
		{Key: "names", Value: meta.Names},
	}
}
