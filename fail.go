package mstream

type Fail[T any] struct {
	Arg T
	Err error
}

func NewFail[T any](msg T, err error) Fail[T] {
	return Fail[T]{
		Arg: msg,
		Err: err,
	}
}

type result[T, TR any] struct {
	arg T
	res TR
	err error
}

func (r *result[T, TR]) success() TR {
	return r.res
}

func (r *result[T, TR]) fail() Fail[T] {
	return NewFail(r.arg, r.err)
}
