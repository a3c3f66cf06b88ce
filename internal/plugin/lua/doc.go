// Package lua runs user step hooks written in Lua.
//
// A hook script is loaded into a sandboxed gopher-lua state and may define a
// global on_step function. Each non-zero scroll step is passed to it as two
// integers:
//
//	function on_step(x, y)
//	    if y ~= 0 then
//	        print("scrolled " .. y .. " lines")
//	    end
//	end
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. The io, os,
// debug and package loaders are not, dofile/loadfile/load/loadstring are
// removed, and require only resolves the built-in safe modules. Every call
// runs under a context deadline so a runaway script is interrupted:
//
//	hook, err := lua.NewHook("steps.lua", lua.WithExecutionTimeout(50*time.Millisecond))
//	if err != nil {
//	    return err
//	}
//	defer hook.Close()
//
//	if err := hook.OnStep(scroll.Delta{Y: -2}); err != nil {
//	    log.Warn("hook: %v", err)
//	}
package lua
