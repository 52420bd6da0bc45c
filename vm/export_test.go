package vm

var (
	TakeFelt   = takeFelt
	TakeString = takeString
)
