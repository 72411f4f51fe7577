// Package mongostore keeps learner progress in MongoDB, one document per
// learner. Every completion is merged with a single pipeline update so
// concurrent completions never overwrite each other.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/progress"
	"github.com/abhisek/cosmath/internal/session"
)

const (
	learnersCollection    = "learners"
	completionsCollection = "completions"
)

// Store wraps a connected client and the cosmath database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to uri and verifies the connection with a ping.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.initIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) initIndexes(ctx context.Context) error {
	_, err := s.db.Collection(completionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "learnerId", Value: 1}, {Key: "completedAt", Value: -1}}},
		{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ProgressRepo returns the learner repository.
func (s *Store) ProgressRepo() *ProgressRepo {
	return &ProgressRepo{col: s.db.Collection(learnersCollection), now: time.Now}
}

// CompletionLog returns the completion history collection.
func (s *Store) CompletionLog() *CompletionLog {
	return &CompletionLog{col: s.db.Collection(completionsCollection)}
}

// ProgressRepo implements progress.Repo.
type ProgressRepo struct {
	col *mongo.Collection
	now func() time.Time
}

var _ progress.Repo = (*ProgressRepo)(nil)

func (r *ProgressRepo) Load(ctx context.Context, learnerID string) (*progress.Learner, error) {
	var l progress.Learner
	err := r.col.FindOne(ctx, bson.M{"_id": learnerID}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, progress.ErrLearnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find learner: %w", err)
	}
	return &l, nil
}

func (r *ProgressRepo) Ensure(ctx context.Context, learnerID, displayName string) (*progress.Learner, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"displayName":   displayName,
		"xp":            0,
		"streak":        0,
		"lastActiveDay": "",
		"createdAt":     r.now().UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": learnerID}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("ensure learner: %w", err)
	}
	return r.Load(ctx, learnerID)
}

// Apply merges d with one upserting pipeline update.
func (r *ProgressRepo) Apply(ctx context.Context, d progress.Delta) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": d.LearnerID}, applyPipeline(d), options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("apply progress: %w", err)
	}
	return nil
}

func (r *ProgressRepo) Reset(ctx context.Context, learnerID string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": learnerID}); err != nil {
		return fmt.Errorf("delete learner: %w", err)
	}
	return nil
}

// applyPipeline builds the update. Expressions within one $set stage all
// read the document as it was before the stage, so the streak compares
// against the previous lastActiveDay.
func applyPipeline(d progress.Delta) mongo.Pipeline {
	at := d.At.UTC()
	lessonPath := "completedLessons." + d.Lesson.LessonID

	set := bson.D{
		{Key: "xp", Value: xpUpdate(d)},
		{Key: "streak", Value: bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$lastActiveDay", d.Day}},
			addTo("$streak", 1),
			1,
		}}},
		{Key: "lessonAttempts." + d.Lesson.LessonID, Value: addTo("$lessonAttempts."+d.Lesson.LessonID, 1)},
		{Key: lessonPath, Value: bson.M{"$mergeObjects": bson.A{
			bson.M{"$literal": d.Lesson},
			bson.M{"bestScore": bson.M{"$max": bson.A{"$" + lessonPath + ".bestScore", d.Lesson.BestScore}}},
		}}},
		{Key: "stats.totalProblemsSolved", Value: addTo("$stats.totalProblemsSolved", d.ProblemsSolved)},
		{Key: "stats.totalTimeSpent", Value: addTo("$stats.totalTimeSpent", d.TimeSpent)},
		{Key: "lastActive", Value: at},
		{Key: "lastActiveDay", Value: d.Day},
		{Key: "displayName", Value: bson.M{"$ifNull": bson.A{"$displayName", ""}}},
		{Key: "createdAt", Value: bson.M{"$ifNull": bson.A{"$createdAt", at}}},
	}
	if d.Topic != "" {
		path := "skills." + string(d.Topic)
		set = append(set, bson.E{Key: path, Value: addTo("$"+path, 1)})
	}
	for _, u := range d.Unlocks {
		path := "achievements." + u.AchievementID
		u.UnlockedAt = u.UnlockedAt.UTC()
		set = append(set, bson.E{Key: path, Value: bson.M{"$ifNull": bson.A{"$" + path, bson.M{"$literal": u}}}})
	}

	return mongo.Pipeline{
		{{Key: "$set", Value: set}},
		{{Key: "$set", Value: bson.D{
			{Key: "stats.highestStreak", Value: bson.M{"$max": bson.A{"$stats.highestStreak", "$streak"}}},
		}}},
	}
}

// xpUpdate adds the lesson XP plus the bonus of every unlock the learner
// does not hold yet.
func xpUpdate(d progress.Delta) bson.M {
	terms := bson.A{bson.M{"$ifNull": bson.A{"$xp", 0}}, d.XP}
	for _, u := range d.Unlocks {
		if u.XPEarned == 0 {
			continue
		}
		terms = append(terms, bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{bson.M{"$type": "$achievements." + u.AchievementID}, "missing"}},
			u.XPEarned,
			0,
		}})
	}
	return bson.M{"$add": terms}
}

// addTo adds n to the numeric field at path, treating a missing field as 0.
func addTo(path string, n int) bson.M {
	return bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{path, 0}}, n}}
}

// CompletionLog stores completion results for history.
type CompletionLog struct {
	col *mongo.Collection
}

var _ progress.CompletionLog = (*CompletionLog)(nil)

type completionDoc struct {
	SessionID          string    `bson:"sessionId"`
	LearnerID          string    `bson:"learnerId"`
	LessonID           string    `bson:"lessonId"`
	LessonTitle        string    `bson:"lessonTitle"`
	Topic              string    `bson:"topic"`
	FinalScore         int       `bson:"finalScore"`
	XPEarned           int       `bson:"xpEarned"`
	BonusXP            int       `bson:"bonusXp"`
	TimeTaken          int       `bson:"timeTaken"`
	AttemptsPerProblem []int     `bson:"attemptsPerProblem"`
	Achievements       []string  `bson:"achievements"`
	CompletedAt        time.Time `bson:"completedAt"`
}

// AppendCompletion inserts res. A replay of the same session is ignored.
func (c *CompletionLog) AppendCompletion(ctx context.Context, learnerID string, res session.CompletionResult) error {
	doc := completionDoc{
		SessionID:          res.SessionID,
		LearnerID:          learnerID,
		LessonID:           res.LessonID,
		LessonTitle:        res.LessonTitle,
		Topic:              string(res.Topic),
		FinalScore:         res.FinalScore,
		XPEarned:           res.XPEarned,
		BonusXP:            res.BonusXPFromAchievements,
		TimeTaken:          res.TimeTakenSeconds,
		AttemptsPerProblem: res.AttemptsPerProblem,
		Achievements:       res.UnlockedAchievementIDs,
		CompletedAt:        res.CompletedAt.UTC(),
	}
	_, err := c.col.UpdateOne(ctx,
		bson.M{"sessionId": res.SessionID},
		bson.M{"$setOnInsert": doc},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}

// Recent returns up to limit completions for learnerID, newest first.
func (c *CompletionLog) Recent(ctx context.Context, learnerID string, limit int) ([]session.CompletionResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := c.col.Find(ctx, bson.M{"learnerId": learnerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find completions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []session.CompletionResult
	for cursor.Next(ctx) {
		var doc completionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode completion: %w", err)
		}
		out = append(out, session.CompletionResult{
			SessionID:               doc.SessionID,
			LessonID:                doc.LessonID,
			LessonTitle:             doc.LessonTitle,
			Topic:                   curriculum.Topic(doc.Topic),
			FinalScore:              doc.FinalScore,
			XPEarned:                doc.XPEarned,
			BonusXPFromAchievements: doc.BonusXP,
			TimeTakenSeconds:        doc.TimeTaken,
			AttemptsPerProblem:      doc.AttemptsPerProblem,
			UnlockedAchievementIDs:  doc.Achievements,
			CompletedAt:             doc.CompletedAt,
		})
	}
	return out, cursor.Err()
}
