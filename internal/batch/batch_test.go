package batch

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mahdiidarabi/ecsign/internal/parser"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/digest"
	"github.com/mahdiidarabi/ecsign/pkg/ecsig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func signVectors(t *testing.T, n int) []*parser.Vector {
	t.Helper()
	vectors := make([]*parser.Vector, n)
	for i := range vectors {
		key, err := ecsig.NewPrivateKey(bn.FromInt64(int64(i + 1)))
		require.NoError(t, err)
		scheme := ecsig.ECDSA
		if i%2 == 1 {
			scheme = ecsig.Schnorr
		}
		vectors[i] = &parser.Vector{
			Index:      i,
			Scheme:     scheme,
			Hash:       digest.Sha256([]byte{byte(i)}),
			PrivateKey: key,
			PublicKey:  key.PubKey(),
		}
	}
	return vectors
}

func TestProcessor_SignThenVerify(t *testing.T) {
	vectors := signVectors(t, 16)
	p := New(Config{Workers: 4}, quiet)

	signed, err := p.Run(context.Background(), vectors)
	require.NoError(t, err)
	require.Len(t, signed, len(vectors))
	assert.EqualValues(t, len(vectors), p.Processed())

	for i, res := range signed {
		require.NoError(t, res.Err, "#%d", i)
		assert.Equal(t, i, res.Index)
		assert.True(t, res.Done)
		assert.Equal(t, Sign, res.Mode)
		assert.True(t, res.Verified, "#%d", i)
		require.NotNil(t, res.Signature)
		if res.Scheme == ecsig.ECDSA {
			assert.True(t, res.Signature.HasRecoveryID())
		}
		vectors[i].Signature = res.Signature
	}

	verified, err := New(Config{}, quiet).Run(context.Background(), vectors)
	require.NoError(t, err)
	for i, res := range verified {
		assert.Equal(t, Verify, res.Mode)
		assert.True(t, res.Verified, "#%d", i)
		assert.NoError(t, res.Reason)
	}
	assert.Equal(t, Summary{Total: 16, Verified: 16}, Summarize(verified))
}

func TestProcessor_Recover(t *testing.T) {
	vectors := signVectors(t, 4)
	for _, v := range vectors {
		v.Scheme = ecsig.ECDSA
		sig, err := ecsig.SignWithCalcI(v.Context())
		require.NoError(t, err)
		v.Signature = sig
	}
	want := vectors[0].PublicKey
	vectors[0].PublicKey = nil
	vectors[1].PublicKey = vectors[2].PublicKey

	results, err := New(Config{Mode: Recover}, quiet).Run(context.Background(), vectors)
	require.NoError(t, err)

	assert.True(t, results[0].Verified)
	assert.True(t, results[0].PublicKey.Equal(want))
	assert.False(t, results[1].Verified)
	assert.Error(t, results[1].Reason)
	assert.True(t, results[2].Verified)
	assert.True(t, results[3].Verified)
}

func TestProcessor_AutoMode(t *testing.T) {
	vectors := signVectors(t, 3)
	for _, v := range vectors[1:] {
		v.Scheme = ecsig.ECDSA
		sig, err := ecsig.SignWithCalcI(v.Context())
		require.NoError(t, err)
		v.Signature = sig
	}
	vectors[2].PublicKey = nil

	results, err := New(Config{Workers: 1}, quiet).Run(context.Background(), vectors)
	require.NoError(t, err)
	assert.Equal(t, Sign, results[0].Mode)
	assert.Equal(t, Verify, results[1].Mode)
	assert.Equal(t, Recover, results[2].Mode)
	for i, res := range results {
		assert.True(t, res.Verified, "#%d", i)
	}
}

func TestProcessor_Failures(t *testing.T) {
	vectors := signVectors(t, 3)
	vectors[1].PrivateKey = nil
	vectors[2].Hash = vectors[2].Hash[:16]

	results, err := New(Config{Mode: Sign}, quiet).Run(context.Background(), vectors)
	require.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ecsig.ErrMissingPrivateKey)
	assert.ErrorIs(t, results[2].Err, ecsig.ErrInvalidHashLen)
	assert.Equal(t, Summary{Total: 3, Verified: 1, Failed: 2}, Summarize(results))

	_, err = New(Config{Mode: Sign, StopOnError: true, Workers: 1}, quiet).Run(context.Background(), vectors)
	assert.ErrorIs(t, err, ecsig.ErrMissingPrivateKey)

	results, err = New(Config{Mode: Recover}, quiet).Run(context.Background(), signVectors(t, 2))
	require.NoError(t, err)
	assert.Error(t, results[0].Err, "no signature")
	assert.Error(t, results[1].Err, "schnorr")
}

func TestProcessor_RejectsBadSignature(t *testing.T) {
	vectors := signVectors(t, 1)
	sig, err := ecsig.Sign(ecsig.ECDSA, vectors[0].Hash, vectors[0].PrivateKey)
	require.NoError(t, err)
	vectors[0].Signature = ecsig.NewSignature(sig.R, sig.S.Add(bn.One))

	results, err := New(Config{Mode: Verify}, quiet).Run(context.Background(), vectors)
	require.NoError(t, err)
	assert.False(t, results[0].Verified)
	assert.ErrorIs(t, results[0].Reason, ecsig.ErrInvalidSignature)
	assert.Equal(t, Summary{Total: 1, Rejected: 1}, Summarize(results))
}

func TestProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{}, quiet).Run(ctx, signVectors(t, 8))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_Report(t *testing.T) {
	vectors := signVectors(t, 1)
	results, err := New(Config{}, quiet).Run(context.Background(), vectors)
	require.NoError(t, err)

	rep := results[0].Report()
	assert.Equal(t, "ecdsa", rep.Scheme)
	assert.Equal(t, "sign", rep.Mode)
	assert.Len(t, rep.R, 64)
	assert.Len(t, rep.S, 64)
	require.NotNil(t, rep.RecoveryID)
	assert.Len(t, rep.Compact, 130)
	assert.Len(t, rep.PublicKey, 66)
	assert.True(t, rep.Verified)
	assert.Empty(t, rep.Error)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Auto, Sign, Verify, Recover} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("guess")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
