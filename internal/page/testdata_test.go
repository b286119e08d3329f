package page

const resultsPage = `<!DOCTYPE html>
<html><head><title>golang - Google Search</title></head>
<body>
  <a href="/preferences">Settings</a>
  <div id="search">
    <div class="g">
      <div class="yuRUbf"><a href="https://go.dev/">The Go Programming Language</a></div>
    </div>
    <div data-hveid="CAE">
      <a href="https://pkg.go.dev/std" data-rect="100,200,300,20">Standard library</a>
    </div>
    <a href="https://maps.google.com/?q=go">Maps</a>
    <a href="javascript:void(0)">Menu</a>
    <a href="ftp://files.example.com/">FTP</a>
  </div>
  <footer><a href="https://example.com/outside">Outside</a></footer>
</body></html>`
