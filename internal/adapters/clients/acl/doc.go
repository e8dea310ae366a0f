// Package acl is the anti-corruption layer between the console backend and
// the rest of the program.
//
// The console speaks a JSON envelope, {"code": 0, "message": "...", "data": ...},
// over HTTP. Calls can fail in four places, modeled as [domain.FailureDomain]:
//
//   - transport: no response was obtained (network error, open circuit)
//   - HTTP status: a response arrived with a non-2xx status
//   - business status: a 2xx response carried a non-zero envelope code
//   - local input: the caller's body was not valid JSON, so nothing was sent
//
// [Classify] turns a transport outcome into an [Outcome] and [Resolve] decodes
// it into a [domain.Result]. [Call] runs both around a [ports.Transport] and is
// what every façade uses, so façades never return errors:
//
//	users := acl.NewUserClient(base)
//	res := users.Info(ctx)
//	if !res.OK() {
//	    fmt.Println(res.Code, res.Message)
//	}
//
// Failures with no better description carry the operation's localized default
// message, for example "获取部门列表失败，请稍后重试".
package acl
